package postproc

import "github.com/tidwall/gjson"

// View provides field access over a resource's raw JSON content for
// discriminator matching.
type View interface {
	// HasField returns true if the path exists in the content.
	HasField(path string) bool

	// GetString returns the string value at path, or false if not found
	// or not a string.
	GetString(path string) (string, bool)

	// GetBytes returns the raw bytes at path, or false if not found.
	// This returns the raw JSON value, including quotes for strings.
	GetBytes(path string) ([]byte, bool)
}

// Discriminator decides whether a ForJSON processor applies to a
// resource's raw JSON content. Discriminators are cheap to evaluate
// compared to fully decoding the payload.
type Discriminator interface {
	Match(v View) bool
}

// HasFields returns a Discriminator that matches when all paths exist.
func HasFields(paths ...string) Discriminator {
	return hasFields{paths: paths}
}

type hasFields struct {
	paths []string
}

func (d hasFields) Match(v View) bool {
	for _, p := range d.paths {
		if !v.HasField(p) {
			return false
		}
	}
	return true
}

// FieldEquals returns a Discriminator that matches when the path exists
// and equals the given string value.
func FieldEquals(path, value string) Discriminator {
	return fieldEquals{path: path, value: value}
}

type fieldEquals struct {
	path  string
	value string
}

func (d fieldEquals) Match(v View) bool {
	s, ok := v.GetString(d.path)
	return ok && s == d.value
}

// And returns a Discriminator that matches when all discriminators match.
func And(ds ...Discriminator) Discriminator {
	return and{ds: ds}
}

type and struct {
	ds []Discriminator
}

func (d and) Match(v View) bool {
	for _, disc := range d.ds {
		if !disc.Match(v) {
			return false
		}
	}
	return true
}

// Or returns a Discriminator that matches when any discriminator matches.
func Or(ds ...Discriminator) Discriminator {
	return or{ds: ds}
}

type or struct {
	ds []Discriminator
}

func (d or) Match(v View) bool {
	for _, disc := range d.ds {
		if disc.Match(v) {
			return true
		}
	}
	return false
}

// jsonView is the gjson-backed View handed to discriminators.
type jsonView struct {
	raw []byte
}

func (v jsonView) HasField(path string) bool {
	return gjson.GetBytes(v.raw, path).Exists()
}

func (v jsonView) GetString(path string) (string, bool) {
	r := gjson.GetBytes(v.raw, path)
	if !r.Exists() {
		return "", false
	}
	if r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

func (v jsonView) GetBytes(path string) ([]byte, bool) {
	r := gjson.GetBytes(v.raw, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}
