// Package guessapi provides the HTTP client for the metadata guessing
// service. The service accepts a release filename and answers with its
// best movie or series match; a second endpoint expands an IMDB id into
// the full feature record including episode listings.
package guessapi
