package policy

// Source says where a route carries the identifier it is authorized on.
type Source int

const (
	FromPath Source = iota
	FromBody
)

func (s Source) String() string {
	if s == FromBody {
		return "body"
	}
	return "path"
}

// Resource kinds the resolver can load.
const (
	KindPatient          = "patient"
	KindHealthData       = "health_data"
	KindHealthDataRecord = "health_data_record"
	KindNote             = "note"
)

// Descriptor tells the resolver how a route's identifier leads to its
// owning patient. It is either Direct or OneHop.
type Descriptor interface {
	// Locate returns where the identifier lives and its field name.
	Locate() (Source, string)
	// Kind is the resource kind the identifier names.
	Kind() string
}

// Direct: the identifier is the patient id itself.
type Direct struct {
	Source Source
	Field  string
}

func (d Direct) Locate() (Source, string) { return d.Source, d.Field }
func (Direct) Kind() string { return KindPatient }

// OneHop: the identifier names a row of kind Via whose patient reference
// is the owner.
type OneHop struct {
	Source Source
	Field  string
	Via    string
}

func (o OneHop) Locate() (Source, string) { return o.Source, o.Field }
func (o OneHop) Kind() string { return o.Via }

// Shorthands for the route table.

func PathPatient(field string) Direct { return Direct{Source: FromPath, Field: field} }
func BodyPatient(field string) Direct { return Direct{Source: FromBody, Field: field} }

func PathVia(field, via string) OneHop { return OneHop{Source: FromPath, Field: field, Via: via} }
