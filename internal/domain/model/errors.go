package model

import "fmt"

// ProfileFetchError reports a failed request for a GitHub user profile.
// StatusCode is zero when the request never produced an HTTP response.
type ProfileFetchError struct {
	StatusCode int
	Err        error
}

func (e *ProfileFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not fetch user profile (status: %d)", e.StatusCode)
	}
	return fmt.Sprintf("could not fetch user profile: %v", e.Err)
}

func (e *ProfileFetchError) Unwrap() error { return e.Err }

// RepoFetchError reports a failed request for one page of repositories.
type RepoFetchError struct {
	Page       int
	StatusCode int
	Err        error
}

func (e *RepoFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("could not fetch repositories (status: %d)", e.StatusCode)
	}
	return fmt.Sprintf("could not fetch repositories (page %d): %v", e.Page, e.Err)
}

func (e *RepoFetchError) Unwrap() error { return e.Err }

// StoreError reports a cache read or write failure. It never reaches the user.
type StoreError struct {
	Op  string // "read", "decode", "encode" or "write".
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
