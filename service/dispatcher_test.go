package service

import (
	"io"
	"log"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"payroll-backend/encryption"
	"payroll-backend/models"
	"payroll-backend/protocol"
	"payroll-backend/storage"
)

type dispatcherFixture struct {
	keys       *encryption.KeyPair
	store      *storage.MemoryStore
	dispatcher *Dispatcher
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()

	keys, err := encryption.GenerateKeyPair(512)
	require.NoError(t, err)

	remote, err := encryption.RebuildPublicKey(keys.PublicView())
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	logger := log.New(io.Discard, "", 0)
	return &dispatcherFixture{
		keys:       keys,
		store:      store,
		dispatcher: NewDispatcher(store, remote, logger, NewSessionStats()),
	}
}

func (f *dispatcherFixture) dispatch(t *testing.T, instruction protocol.Instruction) (protocol.Result, bool) {
	t.Helper()
	frame, err := protocol.EncodeFrame(instruction)
	require.NoError(t, err)
	return f.dispatcher.Dispatch(frame)
}

func (f *dispatcherFixture) addSalary(t *testing.T, salary int64) {
	t.Helper()
	value, err := f.keys.EncryptValue(big.NewInt(salary))
	require.NoError(t, err)

	result, quit := f.dispatch(t, protocol.Instruction{
		Code: models.InstructionAdd.Wire(),
		Data: map[string]string{
			protocol.FieldAdditiveSalary: value.Additive.String(),
			protocol.FieldOrderSalary:    value.Order.String(),
		},
	})
	require.False(t, quit)
	require.Equal(t, "0", result.Code)
	require.Equal(t, "OK", result.Data)
}

func TestDispatchQuit(t *testing.T) {
	f := newDispatcherFixture(t)

	result, quit := f.dispatch(t, protocol.Instruction{Code: "0"})
	require.True(t, quit)
	require.Equal(t, "0", result.Code)
	require.Equal(t, "quit", result.Data)
}

func TestDispatchListTables(t *testing.T) {
	f := newDispatcherFixture(t)

	result, quit := f.dispatch(t, protocol.Instruction{Code: "1"})
	require.False(t, quit)
	require.Equal(t, "0", result.Code)
	require.Equal(t, []string{"Employees"}, result.Data)
}

func TestDispatchAddStoresCiphertexts(t *testing.T) {
	f := newDispatcherFixture(t)
	f.addSalary(t, 5000)

	record, err := f.store.GetEmployee(1)
	require.NoError(t, err)

	ciphertext, ok := new(big.Int).SetString(record.AdditiveCiphertext, 10)
	require.True(t, ok)
	plaintext, err := f.keys.DecryptAdditive(ciphertext)
	require.NoError(t, err)
	require.Equal(t, int64(5000), plaintext.Int64())
}

func TestDispatchCompare(t *testing.T) {
	f := newDispatcherFixture(t)
	f.addSalary(t, 5000)
	f.addSalary(t, 7000)

	result, _ := f.dispatch(t, protocol.Instruction{
		Code: models.InstructionCompare.Wire(),
		Data: map[string]string{"id_1": "1", "id_2": "2"},
	})
	require.Equal(t, "0", result.Code)
	require.Equal(t, "Id 2 has a higher value", result.Data)
}

func TestDispatchCompareMissingID(t *testing.T) {
	f := newDispatcherFixture(t)
	f.addSalary(t, 5000)

	result, _ := f.dispatch(t, protocol.Instruction{
		Code: models.InstructionCompare.Wire(),
		Data: map[string]string{"id_1": "1", "id_2": "9"},
	})
	require.Equal(t, "2", result.Code)
	require.Nil(t, result.Data)
}

func TestDispatchSumStaysEncrypted(t *testing.T) {
	f := newDispatcherFixture(t)
	f.addSalary(t, 5000)
	f.addSalary(t, 7000)

	result, _ := f.dispatch(t, protocol.Instruction{
		Code: models.InstructionSum.Wire(),
		Data: map[string]string{"id_1": "1", "id_2": "2"},
	})
	require.Equal(t, "0", result.Code)

	combined, ok := new(big.Int).SetString(result.Data.(string), 10)
	require.True(t, ok)

	sum, err := f.keys.DecryptAdditive(combined)
	require.NoError(t, err)
	require.Equal(t, int64(12000), sum.Int64())
}

func TestDispatchUnknownInstruction(t *testing.T) {
	f := newDispatcherFixture(t)

	result, quit := f.dispatch(t, protocol.Instruction{Code: "99"})
	require.False(t, quit)
	require.Equal(t, "21", result.Code)
	require.Equal(t, "wrong instruction value", result.Data)

	// the session stays usable afterwards
	result, _ = f.dispatch(t, protocol.Instruction{Code: "1"})
	require.Equal(t, "0", result.Code)
}

func TestDispatchGarbageFrame(t *testing.T) {
	f := newDispatcherFixture(t)

	result, quit := f.dispatcher.Dispatch([]byte("not a frame"))
	require.False(t, quit)
	require.Equal(t, "1", result.Code)

	result, _ = f.dispatch(t, protocol.Instruction{Code: "1"})
	require.Equal(t, "0", result.Code)
}

func TestDispatchMissingInstructionField(t *testing.T) {
	f := newDispatcherFixture(t)

	result, _ := f.dispatcher.Dispatch([]byte(`{"data":{"id_1":"1"}}`))
	require.Equal(t, "1", result.Code)
}

func TestDispatchNonNumericInstruction(t *testing.T) {
	f := newDispatcherFixture(t)

	result, _ := f.dispatch(t, protocol.Instruction{Code: "list"})
	require.Equal(t, "2", result.Code)
}

func TestDispatchAddMissingPayload(t *testing.T) {
	f := newDispatcherFixture(t)

	result, _ := f.dispatch(t, protocol.Instruction{
		Code: models.InstructionAdd.Wire(),
		Data: map[string]string{"paillier_salary": "123"},
	})
	require.Equal(t, "2", result.Code)
}
