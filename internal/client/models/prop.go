package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrIncorrectProp = errors.New("property item must be name=value")
	ErrUnknownProp   = errors.New("unknown property")
	ErrPropType      = errors.New("property value has wrong type")
)

// Prop is the name of an entry property from the LiveJournal property list.
type Prop string

const (
	PropTagList         Prop = "taglist"
	PropCurrentMood     Prop = "current_mood"
	PropCurrentMoodID   Prop = "current_moodid"
	PropCurrentMusic    Prop = "current_music"
	PropCurrentLocation Prop = "current_location"
	PropCurrentCoords   Prop = "current_coords"
	PropPictureKeyword  Prop = "picture_keyword"
	PropAdultContent    Prop = "adult_content"
	PropOptBackdated    Prop = "opt_backdated"
	PropOptNoComments   Prop = "opt_nocomments"
	PropOptNoEmail      Prop = "opt_noemail"
	PropOptPreformatted Prop = "opt_preformatted"
	PropOptScreening    Prop = "opt_screening"
	PropUserAgent       Prop = "useragent"
)

// PropKind is the value type a property accepts.
type PropKind int

const (
	KindString PropKind = iota
	KindBool
	KindInt
)

func (k PropKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

var propKinds = map[Prop]PropKind{
	PropTagList:         KindString,
	PropCurrentMood:     KindString,
	PropCurrentMoodID:   KindInt,
	PropCurrentMusic:    KindString,
	PropCurrentLocation: KindString,
	PropCurrentCoords:   KindString,
	PropPictureKeyword:  KindString,
	PropAdultContent:    KindString,
	PropOptBackdated:    KindBool,
	PropOptNoComments:   KindBool,
	PropOptNoEmail:      KindBool,
	PropOptPreformatted: KindBool,
	PropOptScreening:    KindString,
	PropUserAgent:       KindString,
}

// KindOf returns the value kind of a known property.
func KindOf(p Prop) (PropKind, bool) {
	k, ok := propKinds[p]
	return k, ok
}

// ValidateProp checks that p is a known property and value matches its kind.
// Integers of any width are accepted for KindInt.
func ValidateProp(p Prop, value any) error {
	kind, ok := propKinds[p]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProp, p)
	}

	var match bool
	switch value.(type) {
	case string:
		match = kind == KindString
	case bool:
		match = kind == KindBool
	case int, int8, int16, int32, int64:
		match = kind == KindInt
	}
	if !match {
		return fmt.Errorf("%w: %s wants %s, got %T", ErrPropType, p, kind, value)
	}
	return nil
}

// ParseProp converts the textual value s into the kind required by p.
func ParseProp(p Prop, s string) (any, error) {
	kind, ok := propKinds[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProp, p)
	}
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPropType, p, err)
		}
		return b, nil
	case KindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPropType, p, err)
		}
		return n, nil
	default:
		return s, nil
	}
}

// PropValue is a parsed name=value property.
type PropValue struct {
	Name  Prop
	Value any
}

// PropsFromStrings parses items of the form name=value. Names are trimmed,
// values are converted to the kind the property requires.
func PropsFromStrings(items []string) ([]PropValue, error) {
	out := make([]PropValue, 0, len(items))
	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectProp, item)
		}
		v, err := ParseProp(Prop(name), value)
		if err != nil {
			return nil, err
		}
		out = append(out, PropValue{Name: Prop(name), Value: v})
	}
	return out, nil
}
