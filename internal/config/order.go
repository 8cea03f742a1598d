package config

import "git.home.luguber.info/inful/publisher/internal/foundation/normalization"

// OrderType selects how a sort key is derived from front matter.
type OrderType string

const (
	// OrderTypeFilename derives the key from the file's base name.
	OrderTypeFilename OrderType = ""
	OrderTypeString   OrderType = "string"
	OrderTypeNumber   OrderType = "number"
	OrderTypeDate     OrderType = "date"
)

var orderTypeNormalizer = normalization.NewNormalizer(map[string]OrderType{
	"string":   OrderTypeString,
	"number":   OrderTypeNumber,
	"int":      OrderTypeNumber,
	"integer":  OrderTypeNumber,
	"date":     OrderTypeDate,
	"filename": OrderTypeFilename,
}, OrderTypeFilename)

// Direction is the comparison direction of an ordered selection.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

var directionNormalizer = normalization.NewNormalizer(map[string]Direction{
	"asc":        DirectionAsc,
	"ascending":  DirectionAsc,
	"desc":       DirectionDesc,
	"descending": DirectionDesc,
}, DirectionDesc)

// MissingPolicy decides what indexing does with a document lacking its sort property.
type MissingPolicy string

const (
	// MissingSkip warns and leaves the document out of ordered artifacts.
	MissingSkip MissingPolicy = "skip"
	// MissingAbort fails the index build.
	MissingAbort MissingPolicy = "abort"
)

var missingPolicyNormalizer = normalization.NewNormalizer(map[string]MissingPolicy{
	"skip":  MissingSkip,
	"warn":  MissingSkip,
	"abort": MissingAbort,
	"fail":  MissingAbort,
}, MissingSkip)
