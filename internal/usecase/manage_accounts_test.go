package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/adapters/accounts"
	"github.com/trebuchet-org/scriptkit/internal/adapters/blockchain/simtest"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

func newManageAccounts(t *testing.T, network string) (*usecase.ManageAccounts, *accounts.Keystore, *MockPasswordProvider) {
	t.Helper()
	cfg := newRuntimeConfig(t, network)
	keystore := accounts.NewLightKeystore(t.TempDir(), discardLogger())
	passwords := &MockPasswordProvider{}
	uc := usecase.NewManageAccounts(cfg, accounts.NewDevAccounts(cfg), keystore, passwords, discardLogger())
	return uc, keystore, passwords
}

func TestManageAccounts_NewAndList(t *testing.T) {
	ctx := context.Background()
	uc, keystore, passwords := newManageAccounts(t, "development")
	passwords.On("Password", ctx, "deployer", true).Return("hunter2", nil)
	passwords.On("Password", ctx, "fresh", true).Return("hunter2", nil)

	entry, err := uc.New(ctx, usecase.NewAccountParams{ID: "deployer", PrivateKey: "0x" + simtest.Key1})
	require.NoError(t, err)
	assert.Equal(t, addr1, entry.Address)

	generated, err := uc.New(ctx, usecase.NewAccountParams{ID: "fresh"})
	require.NoError(t, err)
	assert.NotEqual(t, addr1, generated.Address)

	loaded, err := keystore.Load(ctx, "deployer", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, addr1, loaded.Address)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "development", list.Network)
	require.Len(t, list.Keystore, 2)
	assert.Equal(t, "deployer", list.Keystore[0].ID)
	assert.Equal(t, "fresh", list.Keystore[1].ID)
	require.Len(t, list.Dev, 10)
	assert.Equal(t, addr0, list.Dev[0].Address)

	passwords.AssertExpectations(t)
}

func TestManageAccounts_ListLiveNetworkHasNoDevAccounts(t *testing.T) {
	uc, _, _ := newManageAccounts(t, "rinkeby")

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Keystore)
	assert.Nil(t, list.Dev)
}

func TestManageAccounts_NewErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		params  usecase.NewAccountParams
		wantErr string
	}{
		{name: "invalid id", params: usecase.NewAccountParams{ID: "../escape"}, wantErr: "invalid account id"},
		{name: "empty id", params: usecase.NewAccountParams{ID: ""}, wantErr: "invalid account id"},
		{name: "invalid key", params: usecase.NewAccountParams{ID: "bad", PrivateKey: "0xzz"}, wantErr: "invalid private key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, passwords := newManageAccounts(t, "development")

			_, err := uc.New(ctx, tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			passwords.AssertNotCalled(t, "Password", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		uc, _, passwords := newManageAccounts(t, "development")
		passwords.On("Password", ctx, "deployer", true).Return("pw", nil).Once()

		_, err := uc.New(ctx, usecase.NewAccountParams{ID: "deployer"})
		require.NoError(t, err)

		_, err = uc.New(ctx, usecase.NewAccountParams{ID: "deployer"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		passwords.AssertExpectations(t)
	})

	t.Run("password refused", func(t *testing.T) {
		uc, keystore, passwords := newManageAccounts(t, "development")
		passwords.On("Password", ctx, "deployer", true).Return("", errors.New("passwords do not match"))

		_, err := uc.New(ctx, usecase.NewAccountParams{ID: "deployer"})
		assert.EqualError(t, err, "passwords do not match")

		_, err = keystore.Get(ctx, "deployer")
		assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
	})
}

func TestManageAccounts_Delete(t *testing.T) {
	ctx := context.Background()
	uc, keystore, _ := newManageAccounts(t, "development")
	key0 := simtest.Account(t, simtest.Key0, 0).Key
	key1 := simtest.Account(t, simtest.Key1, 1).Key
	_, err := keystore.Save(ctx, "a", key0, "pw")
	require.NoError(t, err)
	_, err = keystore.Save(ctx, "b", key1, "pw")
	require.NoError(t, err)

	deleted, err := uc.Delete(ctx, []string{"a", "missing", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
	assert.Equal(t, []string{"a"}, deleted)

	entries, err := keystore.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ID)
}

func TestManageAccounts_DeleteStaysInKeystore(t *testing.T) {
	ctx := context.Background()
	uc, keystore, _ := newManageAccounts(t, "development")

	outside := filepath.Join(filepath.Dir(keystore.Dir()), "build", "deployments", "1337.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(outside), 0755))
	require.NoError(t, os.WriteFile(outside, []byte(`[]`), 0644))

	deleted, err := uc.Delete(ctx, []string{"../build/deployments/1337"})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
	assert.Empty(t, deleted)
	assert.FileExists(t, outside)
}
