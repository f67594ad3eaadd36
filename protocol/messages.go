package protocol

// Wire messages. Every frame is one flat JSON object; codes travel as
// decimal strings.

// PublicKeyAnnouncement is sent exactly once, client to server, before the
// instruction loop begins. It carries the Paillier public modulus and
// nothing else.
type PublicKeyAnnouncement struct {
	N string `json:"n"`
}

// Instruction is one client request.
type Instruction struct {
	Code string            `json:"instruction"`
	Data map[string]string `json:"data,omitempty"`
}

// Result is the server's answer to one instruction.
type Result struct {
	Code string `json:"result"`
	Data any    `json:"data,omitempty"`
}

// Instruction payload field names.
const (
	FieldAdditiveSalary = "paillier_salary"
	FieldOrderSalary    = "ope_salary"
	FieldFirstID        = "id_1"
	FieldSecondID       = "id_2"
)
