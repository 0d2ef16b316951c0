package orm

import (
	"github.com/iov-one/barter/codec"
	"github.com/iov-one/barter/errors"
)

// Counter is a minimal model used to exercise buckets and indexes.
type Counter struct {
	Count int64
}

var _ Model = (*Counter)(nil)

func NewCounter(count int64) *Counter {
	return &Counter{Count: count}
}

func (c *Counter) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Int64(1, c.Count)
	return e.Result()
}

func (c *Counter) Unmarshal(raw []byte) error {
	*c = Counter{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Num == 1 {
			c.Count, err = f.Int64()
		}
		return err
	})
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// Validate rejects negative counters.
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative counter")
	}
	return nil
}

// Label is a second model type, used to check that buckets refuse
// foreign models.
type Label struct {
	Text string
}

var _ Model = (*Label)(nil)

func (l *Label) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, l.Text)
	return e.Result()
}

func (l *Label) Unmarshal(raw []byte) error {
	*l = Label{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Num == 1 {
			l.Text, err = f.String()
		}
		return err
	})
}

func (l *Label) Copy() CloneableData {
	return &Label{Text: l.Text}
}

func (l *Label) Validate() error {
	if l.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}
