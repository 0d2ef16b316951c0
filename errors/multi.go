package errors

import (
	"strings"
)

// Append joins given errors into a single error instance. Nil errors are
// dropped. Returns nil if no non-nil error was given. Use it to collect
// validation issues of many fields at once.
//
// Result of Append can be tested using Is method of any root error: the test
// succeeds if at least one of the joined errors matches.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, e)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr is a group of errors. The ABCI code of the group is the code of
// the first error.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack returns all errors that are part of this group.
func (m multiErr) Unpack() []error {
	return m
}

func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}
