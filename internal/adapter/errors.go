package adapter

import "errors"

// ErrManifest is returned by FetchManifest when a page is malformed or
// inconsistent. A false "not in manifest" entry would cause an incorrect
// deletion, so a bad page always fails the whole fetch; the sync cycle
// treats this exactly like a transport failure and aborts.
var ErrManifest = errors.New("malformed manifest response")
