package tag

import "fmt"

// Reason is why a tag mutation was refused. The zero value means no failure.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNameRequired
	ReasonNoTagsToAdd
	ReasonNoTagsToRemove
	ReasonNoTagsOrFilesToAdd
	ReasonUnauthorized
	ReasonFileNotFound
	ReasonSomeTagsNotFound
)

// Wire strings; clients compare on these
var reasonText = [...]string{
	ReasonNone:               "",
	ReasonNameRequired:       "name is required",
	ReasonNoTagsToAdd:        "no tags to add",
	ReasonNoTagsToRemove:     "no tags to remove",
	ReasonNoTagsOrFilesToAdd: "no tags or files to add",
	ReasonUnauthorized:       "unauthorized",
	ReasonFileNotFound:       "file not found",
	ReasonSomeTagsNotFound:   "some tags not found",
}

func (r Reason) String() string {
	if int(r) < len(reasonText) {
		return reasonText[r]
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// IsInput reports whether the reason is an input error detected before any I/O
func (r Reason) IsInput() bool {
	switch r {
	case ReasonNameRequired, ReasonNoTagsToAdd, ReasonNoTagsToRemove, ReasonNoTagsOrFilesToAdd:
		return true
	}
	return false
}

func (r Reason) MarshalText() ([]byte, error) {
	if int(r) >= len(reasonText) {
		return nil, fmt.Errorf("unknown tag reason %d", uint8(r))
	}
	return []byte(reasonText[r]), nil
}

func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := ParseReason(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseReason maps a wire string back to its Reason
func ParseReason(s string) (Reason, error) {
	for i, text := range reasonText {
		if text == s {
			return Reason(i), nil
		}
	}
	return ReasonNone, fmt.Errorf("unknown tag reason %q", s)
}
