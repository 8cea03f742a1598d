package metrics

import (
	"errors"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if path == "" {
		return errors.New("metrics: empty textfile path")
	}
	return prom.WriteToTextfile(path, g)
}
