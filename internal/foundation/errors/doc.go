// Package errors provides the classified error primitives used across the publisher.
//
// A ClassifiedError carries a category (what part of the pipeline failed), a
// severity (whether the run, the artifact or nothing at all is affected) and a
// small context map that ends up as structured log attributes.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryTemplate, "template read failed").
//		Warning().
//		WithContext("template", "templates/list.tmpl").
//		Build()
package errors
