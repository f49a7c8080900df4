// Package episodedetect extracts season and episode numbers from release
// filenames using the rls parser, covering SxxEyy, NxM and date-style
// naming without bespoke regexes.
package episodedetect
