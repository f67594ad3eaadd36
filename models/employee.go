package models

// EmployeeRecord is one dual-encrypted salary row. Both ciphertexts encode
// the same plaintext: the additive one under the client's Paillier public
// key, the order one under its order-preserving secret key. Records are
// insert-only; nothing in the protocol updates or deletes them.
type EmployeeRecord struct {
	ID                 int64  `json:"id"`
	AdditiveCiphertext string `json:"phe_salary"`
	OrderCiphertext    string `json:"ope_salary"`
}
