package method

import "strings"

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count
)

var names = [...]string{
	Unknown: "UNKNOWN",
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

func (m Method) String() string {
	if m >= Count {
		return names[Unknown]
	}

	return names[m]
}

type entry struct {
	Method Method
	Origin string
}

func newMethodsMap(methods ...Method) (mmap [256][256]entry) {
	for _, method := range methods {
		str := method.String()
		mmap[str[0]][str[1]] = entry{
			Method: method,
			Origin: str,
		}
	}

	return mmap
}

var methodsMap = newMethodsMap(GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH)

func Parse(str string) Method {
	if len(str) < 2 {
		return Unknown
	}

	method := methodsMap[str[0]][str[1]]
	if method.Origin != str {
		return Unknown
	}

	return method.Method
}

// Set is a composite of methods, e.g. POST|PUT|PATCH.
type Set uint16

// Mutating is the set of methods expected to carry a request body.
var Mutating = Of(POST, PUT, PATCH)

// Of composes a set out of methods.
func Of(methods ...Method) (s Set) {
	for _, m := range methods {
		s = s.With(m)
	}

	return s
}

func (s Set) With(m Method) Set {
	if m == Unknown || m >= Count {
		return s
	}

	return s | 1<<m
}

// Has reports whether the method is a member of the set. Unknown is never a member.
func (s Set) Has(m Method) bool {
	return m != Unknown && m < Count && s&(1<<m) != 0
}

func (s Set) String() string {
	var members []string
	for m := GET; m < Count; m++ {
		if s.Has(m) {
			members = append(members, m.String())
		}
	}

	return strings.Join(members, "|")
}
