// Package search queries the Google Custom Search JSON API.
//
// The client issues a single GET per search with the API key, engine id, and
// query passed as URL parameters, and decodes the items array into source
// records. A response without items is a valid empty result, not an error.
// Request URLs carry credentials in the query string and must never be logged
// verbatim; callers log them through the credential-masking logger instead.
package search
