package playground

import "errors"

var (
	ErrUnsupportedScheme = errors.New("playground: only http and https URLs can be fetched")
	ErrHostNotAllowed    = errors.New("playground: host is not in PLAYGROUND_FETCH_HOSTS")
	ErrTooManyRedirects  = errors.New("playground: stopped after 10 redirects")
)
