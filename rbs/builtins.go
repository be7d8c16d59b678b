package rbs

// BuiltinRecords is the fallback core catalog registered when neither a
// cache nor a harvester is available. Undefined-method findings will be
// over-reported against it; the driver logs that caveat when it applies.
func BuiltinRecords() []Record {
	return []Record{
		{ReceiverClass: "String", MethodName: "upcase", ReturnType: "String"},
		{ReceiverClass: "String", MethodName: "downcase", ReturnType: "String"},
		{ReceiverClass: "String", MethodName: "capitalize", ReturnType: "String"},
		{ReceiverClass: "String", MethodName: "strip", ReturnType: "String"},
		{ReceiverClass: "String", MethodName: "length", ReturnType: "Integer"},
		{ReceiverClass: "String", MethodName: "size", ReturnType: "Integer"},
		{ReceiverClass: "String", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "String", MethodName: "to_i", ReturnType: "Integer"},
		{ReceiverClass: "String", MethodName: "to_sym", ReturnType: "Symbol"},
		{ReceiverClass: "String", MethodName: "empty?", ReturnType: "bool"},
		{ReceiverClass: "String", MethodName: "chars", ReturnType: "Array[String]"},
		{ReceiverClass: "Integer", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "Integer", MethodName: "to_f", ReturnType: "Float"},
		{ReceiverClass: "Integer", MethodName: "succ", ReturnType: "Integer"},
		{ReceiverClass: "Integer", MethodName: "abs", ReturnType: "Integer"},
		{ReceiverClass: "Integer", MethodName: "zero?", ReturnType: "bool"},
		{ReceiverClass: "Integer", MethodName: "times", ReturnType: "Integer", BlockParamTypes: []string{"Integer"}},
		{ReceiverClass: "Float", MethodName: "to_i", ReturnType: "Integer"},
		{ReceiverClass: "Float", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "Float", MethodName: "round", ReturnType: "Integer"},
		{ReceiverClass: "Symbol", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "Symbol", MethodName: "to_sym", ReturnType: "Symbol"},
		{ReceiverClass: "Array", MethodName: "each", ReturnType: "Array", BlockParamTypes: []string{"Elem"}},
		{ReceiverClass: "Array", MethodName: "map", ReturnType: "Array", BlockParamTypes: []string{"Elem"}},
		{ReceiverClass: "Array", MethodName: "select", ReturnType: "Array", BlockParamTypes: []string{"Elem"}},
		{ReceiverClass: "Array", MethodName: "length", ReturnType: "Integer"},
		{ReceiverClass: "Array", MethodName: "size", ReturnType: "Integer"},
		{ReceiverClass: "Array", MethodName: "first", ReturnType: "untyped"},
		{ReceiverClass: "Array", MethodName: "last", ReturnType: "untyped"},
		{ReceiverClass: "Array", MethodName: "empty?", ReturnType: "bool"},
		{ReceiverClass: "Array", MethodName: "join", ReturnType: "String"},
		{ReceiverClass: "Hash", MethodName: "each", ReturnType: "Hash", BlockParamTypes: []string{"K", "V"}},
		{ReceiverClass: "Hash", MethodName: "keys", ReturnType: "Array"},
		{ReceiverClass: "Hash", MethodName: "values", ReturnType: "Array"},
		{ReceiverClass: "Hash", MethodName: "size", ReturnType: "Integer"},
		{ReceiverClass: "Hash", MethodName: "empty?", ReturnType: "bool"},
		{ReceiverClass: "Range", MethodName: "each", ReturnType: "Range", BlockParamTypes: []string{"Elem"}},
		{ReceiverClass: "Range", MethodName: "to_a", ReturnType: "Array"},
		{ReceiverClass: "NilClass", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "NilClass", MethodName: "nil?", ReturnType: "bool"},
		{ReceiverClass: "Object", MethodName: "to_s", ReturnType: "String"},
		{ReceiverClass: "Object", MethodName: "inspect", ReturnType: "String"},
		{ReceiverClass: "Object", MethodName: "frozen?", ReturnType: "bool"},
	}
}
