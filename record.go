package bitfield

// Record is a mutable instance of a schema. Field indices are declaration
// order. Records are plain values: they hold no locks.
type Record interface {
	Schema() *Schema

	// Get returns the value of field i. It panics with a *Error if the
	// field's getter is skipped or i is out of range.
	Get(i int) uint64
	GetBool(i int) bool

	// Set stores v in field i. An out of domain value is OutOfBounds and
	// leaves the record unchanged. It panics like Get for a skipped setter.
	Set(i int, v uint64) error

	// With returns a modified copy; the receiver is unchanged.
	With(i int, v uint64) (Record, error)

	Clone() Record
	Reset()

	Bytes() []byte
	Int() (Uint128, error)
	UpdateByteLE(idx int, b byte) error
	UpdateByteBE(idx int, b byte) error

	String() string
}

var (
	_ Record = (*Unpacked)(nil)
	_ Record = (*Packed)(nil)
)

// Unpacked is a record holding one slot per field. Padding fields have no
// slot.
type Unpacked struct {
	schema *Schema
	slots  []uint64
}

// NewUnpacked returns a zeroed unpacked record of s.
func NewUnpacked(s *Schema) *Unpacked {
	return &Unpacked{schema: s, slots: make([]uint64, s.nslots)}
}

func (u *Unpacked) Schema() *Schema {
	return u.schema
}

func (u *Unpacked) Get(i int) uint64 {
	u.schema.getter(i)
	return u.slot(i)
}

func (u *Unpacked) GetBool(i int) bool {
	return u.Get(i) != 0
}

func (u *Unpacked) Set(i int, v uint64) error {
	u.schema.setter(i)
	if err := u.schema.Check(i, v); err != nil {
		return err
	}
	u.slots[u.schema.slots[i]] = v
	return nil
}

func (u *Unpacked) With(i int, v uint64) (Record, error) {
	c := u.clone()
	if err := c.Set(i, v); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Unpacked) Clone() Record {
	return u.clone()
}

func (u *Unpacked) clone() *Unpacked {
	c := &Unpacked{schema: u.schema, slots: make([]uint64, len(u.slots))}
	copy(c.slots, u.slots)
	return c
}

func (u *Unpacked) Reset() {
	clear(u.slots)
}

func (u *Unpacked) Bytes() []byte {
	return u.schema.EncodeBytes(u.values())
}

func (u *Unpacked) Int() (Uint128, error) {
	if err := u.schema.requireBacking(); err != nil {
		return Uint128{}, err
	}
	return u.schema.EncodeInt(u.values()), nil
}

func (u *Unpacked) UpdateByteLE(idx int, b byte) error {
	vals, err := u.schema.UpdateByteLE(u.values(), idx, b)
	if err != nil {
		return err
	}
	u.load(vals)
	return nil
}

func (u *Unpacked) UpdateByteBE(idx int, b byte) error {
	vals, err := u.schema.UpdateByteBE(u.values(), idx, b)
	if err != nil {
		return err
	}
	u.load(vals)
	return nil
}

func (u *Unpacked) String() string {
	return u.schema.format(u.slot)
}

// slot returns the stored value of field i; padding reads as zero.
func (u *Unpacked) slot(i int) uint64 {
	if j := u.schema.slots[i]; j >= 0 {
		return u.slots[j]
	}
	return 0
}

// values expands the slots to one value per field.
func (u *Unpacked) values() []uint64 {
	vals := make([]uint64, len(u.schema.fields))
	for i := range vals {
		vals[i] = u.slot(i)
	}
	return vals
}

func (u *Unpacked) load(vals []uint64) {
	for i, j := range u.schema.slots {
		if j >= 0 {
			u.slots[j] = vals[i]
		}
	}
}
