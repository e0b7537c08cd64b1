// Package validation checks declaration sets before documents reference
// them: dangling model references, invalid declarations and documents that
// fail to convert.
package validation
