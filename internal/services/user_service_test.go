package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	models.UserRepo
	user         *models.User
	upserted     *models.UserPreferences
	connected    string
	disconnected bool
}

func (f *fakeUserRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) GetUserByWallet(ctx context.Context, wallet string) (*models.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) UpsertPreferences(ctx context.Context, userID string, prefs models.UserPreferences) (bool, error) {
	f.upserted = &prefs
	return true, nil
}

func (f *fakeUserRepo) ConnectWallet(ctx context.Context, userID, wallet string) error {
	f.connected = wallet
	return nil
}

func (f *fakeUserRepo) DisconnectWallet(ctx context.Context, userID string) error {
	f.disconnected = true
	return nil
}

type fakeTransactionRepo struct {
	models.TransactionRepo
	created *models.Transaction
}

func (f *fakeTransactionRepo) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	f.created = tx
	return tx, nil
}

func (f *fakeTransactionRepo) ListTransactionsByWallet(ctx context.Context, wallet string, limit int) ([]*models.Transaction, error) {
	if f.created == nil {
		return nil, nil
	}
	return []*models.Transaction{f.created}, nil
}

func newUserService() (*UserService, *fakeUserRepo, *fakeTransactionRepo) {
	users := &fakeUserRepo{}
	transactions := &fakeTransactionRepo{}
	return NewUserService(users, transactions, nil), users, transactions
}

func TestUpdatePreferencesNormalizes(t *testing.T) {
	us, users, _ := newUserService()

	result, err := us.UpdatePreferences(context.Background(), "user-1", &models.UserPreferences{})
	require.NoError(t, err)

	assert.Equal(t, "user-1", result["userId"])
	assert.Equal(t, true, result["updated"])
	require.NotNil(t, users.upserted)
	assert.Equal(t, models.SafetyMedium, users.upserted.SafetyLevel)
	assert.Equal(t, "en", users.upserted.Language)
}

func TestGetPreferencesUnknownUser(t *testing.T) {
	us, _, _ := newUserService()

	prefs, err := us.GetPreferences(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestWalletConnect(t *testing.T) {
	us, users, _ := newUserService()

	result, err := us.Wallet(context.Background(), &WalletRequest{
		Action:        WalletConnect,
		UserID:        "user-1",
		WalletAddress: "0xwallet",
	})
	require.NoError(t, err)

	assert.Equal(t, true, result["connected"])
	assert.Equal(t, "0xwallet", users.connected)
}

func TestWalletVerifySignatureLength(t *testing.T) {
	us, _, _ := newUserService()

	short, err := us.Wallet(context.Background(), &WalletRequest{
		Action:        WalletVerify,
		WalletAddress: "0xwallet",
		Signature:     "0xshort",
		Message:       "login",
	})
	require.NoError(t, err)
	assert.Equal(t, false, short["verified"])

	long, err := us.Wallet(context.Background(), &WalletRequest{
		Action:        WalletVerify,
		WalletAddress: "0xwallet",
		Signature:     "0x" + strings.Repeat("ab", 65),
		Message:       "login",
	})
	require.NoError(t, err)
	assert.Equal(t, true, long["verified"])
}

func TestWalletTransactionDefaults(t *testing.T) {
	us, _, transactions := newUserService()

	_, err := us.Wallet(context.Background(), &WalletRequest{
		Action:          WalletTransaction,
		WalletAddress:   "0xwallet",
		TransactionHash: "0xtx",
	})
	require.NoError(t, err)

	require.NotNil(t, transactions.created)
	assert.Equal(t, "verification", transactions.created.Type)
	assert.Equal(t, "0", transactions.created.Amount)
	assert.Equal(t, "pending", transactions.created.Status)
}

func TestWalletRejectsUnknownAction(t *testing.T) {
	us, _, _ := newUserService()

	_, err := us.Wallet(context.Background(), &WalletRequest{Action: "stake"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}

func TestWalletInfoUnknownUser(t *testing.T) {
	us, _, _ := newUserService()

	_, err := us.WalletInfo(context.Background(), "0xwallet", "")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 404, reqErr.Status)
}

func TestSignUpValidation(t *testing.T) {
	us, _, _ := newUserService()
	var reqErr *RequestError

	_, err := us.SignUp(context.Background(), "not-an-email", "password123")
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)

	_, err = us.SignUp(context.Background(), "traveler@example.com", "short")
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}
