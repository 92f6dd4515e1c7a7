// Package autodocs turns a documentation site into a searchable corpus.
// It detects which generator produced the site (Sphinx, MkDocs, or
// neither), scrapes the pages with the strategy that matches, converts
// the content to markdown, and persists the result for downstream
// embedding and indexing.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// sqlite/, goquery/).
package autodocs
