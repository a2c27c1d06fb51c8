// Package document provides the text-fragment tree that backs a shared
// editing surface, along with offset resolution into that tree.
//
// A document is a tree of structural nodes whose leaves carry runs of text.
// Linear offsets count characters across the ordered leaves only; structural
// boundaries contribute no length.
package document
