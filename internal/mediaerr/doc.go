// Package mediaerr defines the failure taxonomy shared by hashing, caching,
// request coordination, and identification, plus helpers for tagging and
// classifying errors.
package mediaerr
