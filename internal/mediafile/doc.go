// Package mediafile models the files a drop session operates on: discovery
// of videos and subtitles under a directory, extension and header based kind
// detection, and byte access with the pipeline's error taxonomy.
package mediafile
