package postproc

import (
	"fmt"
	"net/http"
)

// Envelope is a transport wrapper carrying exactly one body value plus
// metadata. The dispatcher strips the envelope before processing and
// rebuilds it afterward via Rewrap, so metadata always survives
// untouched.
type Envelope interface {
	// EnvelopeBody returns the wrapped value.
	EnvelopeBody() any

	// Rewrap returns a new envelope of the same kind carrying body,
	// with this envelope's transport metadata.
	Rewrap(body any) Envelope
}

// Entity is a plain envelope: a body plus HTTP headers.
type Entity struct {
	Body   any
	Header http.Header
}

// EnvelopeBody implements Envelope.
func (e *Entity) EnvelopeBody() any { return e.Body }

// Rewrap implements Envelope. The header map is shared, not copied;
// the dispatcher never writes to it.
func (e *Entity) Rewrap(body any) Envelope {
	return &Entity{Body: body, Header: e.Header}
}

// ResponseEntity is a status-bearing envelope.
type ResponseEntity struct {
	Entity
	StatusCode int
}

// Rewrap implements Envelope, preserving the status code.
func (e *ResponseEntity) Rewrap(body any) Envelope {
	return &ResponseEntity{
		Entity:     Entity{Body: body, Header: e.Header},
		StatusCode: e.StatusCode,
	}
}

// HeaderWrapper moves top-level relation links from an envelope's body
// into transport headers. The dispatcher only decides whether to invoke
// it (see WithRootLinksAsHeaders); how links map onto headers is the
// wrapper's business.
type HeaderWrapper interface {
	WrapLinks(env Envelope) Envelope
}

// LinkHeaderWrapper is the default HeaderWrapper. It serializes the
// body's links as RFC 8288 Link header values and clears them from the
// body. The original envelope's header map is cloned, never written to.
//
// Only the package's Entity and ResponseEntity kinds are rewritten;
// other envelope implementations pass through unchanged.
type LinkHeaderWrapper struct{}

// WrapLinks implements HeaderWrapper.
func (LinkHeaderWrapper) WrapLinks(env Envelope) Envelope {
	var src *Entity
	var status int
	statusBearing := false

	switch e := env.(type) {
	case *ResponseEntity:
		src, status, statusBearing = &e.Entity, e.StatusCode, true
	case *Entity:
		src = e
	default:
		return env
	}

	// The body here is dispatch output, owned by this request; clearing
	// its links in place is safe.
	body := src.Body
	var links []Link
	if r, ok := AsResource(body); ok {
		links, r.Links = r.Links, nil
	} else if c, ok := AsCollection(body); ok {
		links, c.Links = c.Links, nil
	}
	if len(links) == 0 {
		return env
	}

	header := src.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	for _, l := range links {
		header.Add("Link", fmt.Sprintf("<%s>; rel=%q", l.Href, l.Rel))
	}

	if statusBearing {
		return &ResponseEntity{Entity: Entity{Body: body, Header: header}, StatusCode: status}
	}
	return &Entity{Body: body, Header: header}
}
