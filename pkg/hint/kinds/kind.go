package kinds

type Kind int

const (
	Unknown Kind = iota
	None
	Str
	Int
	Bytes
	Bool
	DateTime
	Date
	Any
	List
	Set
	Dict
	Tuple
	Union
	Constructor
)

func (k Kind) IsPrimitive() bool {
	return k == Str || k == Int || k == Bytes || k == Bool
}

func (k Kind) IsContainer() bool {
	return k == List || k == Set || k == Dict || k == Tuple
}

func (k Kind) IsTemporal() bool {
	return k == DateTime || k == Date
}

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Str:
		return "str"
	case Int:
		return "int"
	case Bytes:
		return "bytes"
	case Bool:
		return "bool"
	case DateTime:
		return "datetime"
	case Date:
		return "date"
	case Any:
		return "any"
	case List:
		return "list"
	case Set:
		return "set"
	case Dict:
		return "dict"
	case Tuple:
		return "tuple"
	case Union:
		return "union"
	case Constructor:
		return "constructor"
	default:
		return "<unknown>"
	}
}
