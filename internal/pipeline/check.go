package pipeline

import (
	"context"
	"net/url"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/publisher/internal/index"
	"git.home.luguber.info/inful/publisher/internal/markdown"
	"git.home.luguber.info/inful/publisher/internal/render"
)

// DanglingLink is a relative link from a source document to a file that was
// not discovered.
type DanglingLink struct {
	Document string `json:"document"`
	Target   string `json:"target"`
}

// CheckReport lists configuration hazards found without writing anything.
type CheckReport struct {
	Targets    []render.Target            `json:"targets"`
	Collisions map[string][]render.Target `json:"collisions"`
	Dangling   []DanglingLink             `json:"dangling_links"`
	IndexError string                     `json:"index_error,omitempty"`
}

// OK reports whether no hazard was found.
func (c *CheckReport) OK() bool {
	return len(c.Collisions) == 0 && len(c.Dangling) == 0 && c.IndexError == ""
}

// Check plans every write of the configuration and reports paths targeted
// more than once, plus relative links to files that do not exist.
func (p *Publisher) Check(ctx context.Context) (*CheckReport, error) {
	rep := &CheckReport{}
	if err := p.Sanity(ctx); err != nil && p.idx == nil {
		return nil, err
	} else if err != nil {
		rep.IndexError = err.Error()
	}
	env, err := p.Env()
	if err != nil {
		return nil, err
	}
	rep.Targets = render.PlanFor(p.cfg).Targets(env)
	rep.Collisions = render.Collisions(rep.Targets)

	known := p.idx.Files()
	for _, f := range known {
		if !index.IsMarkdown(f) {
			continue
		}
		doc, err := index.RawPath(f).Resolve(p.idx.Prefix())
		if err != nil {
			continue
		}
		for _, l := range markdown.ExtractLinks(doc.Body) {
			if target, ok := localTarget(f, l.Destination); ok && !slices.Contains(known, target) {
				rep.Dangling = append(rep.Dangling, DanglingLink{Document: f, Target: l.Destination})
			}
		}
	}
	return rep, nil
}

// localTarget resolves a relative link destination against the linking
// document. Absolute URLs, fragments and site-absolute paths are ignored.
func localTarget(from, dest string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	target := path.Clean(path.Join(path.Dir(from), u.Path))
	if strings.HasSuffix(u.Path, "/") {
		target += "/"
	}
	return target, true
}
