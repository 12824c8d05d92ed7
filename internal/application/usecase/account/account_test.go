package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
	failErr  error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return nil, domainerror.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, a *entity.Account) error {
	stored := r.accounts[a.ID]
	stored.Name = a.Name
	stored.IsArchived = a.IsArchived
	stored.IncludeInTotals = a.IncludeInTotals
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) AdjustBalance(_ context.Context, _, id uuid.UUID, delta decimal.Decimal) error {
	r.accounts[id].Balance = r.accounts[id].Balance.Add(delta)
	return nil
}

type recordingPublisher struct{ events []entity.ChangeEvent }

func (p *recordingPublisher) Publish(_ context.Context, e entity.ChangeEvent) error {
	p.events = append(p.events, e)
	return nil
}

func TestCreateAccount(t *testing.T) {
	userID := uuid.New()
	off := false

	tests := []struct {
		name        string
		input       CreateAccountInput
		wantErr     error
		wantInclude bool
	}{
		{
			name:        "defaults to included in totals",
			input:       CreateAccountInput{UserID: userID, Name: "  Checking ", OpeningBalance: decimal.NewFromInt(100)},
			wantInclude: true,
		},
		{
			name:        "explicitly excluded",
			input:       CreateAccountInput{UserID: userID, Name: "Wallet", IncludeInTotals: &off},
			wantInclude: false,
		},
		{
			name:    "empty name",
			input:   CreateAccountInput{UserID: userID, Name: "   "},
			wantErr: domainerror.ErrInvalidAccountName,
		},
		{
			name:    "name too long",
			input:   CreateAccountInput{UserID: userID, Name: strings.Repeat("a", 101)},
			wantErr: domainerror.ErrInvalidAccountName,
		},
		{
			name:    "opening balance below cents",
			input:   CreateAccountInput{UserID: userID, Name: "Checking", OpeningBalance: decimal.RequireFromString("10.005")},
			wantErr: domainerror.ErrInvalidOpeningBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateAccountUseCase(newFakeAccountRepo())
			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Account.IncludeInTotals != tt.wantInclude {
				t.Errorf("IncludeInTotals = %v, want %v", out.Account.IncludeInTotals, tt.wantInclude)
			}
			if strings.TrimSpace(out.Account.Name) != out.Account.Name {
				t.Errorf("name not trimmed: %q", out.Account.Name)
			}
		})
	}

	t.Run("store failure", func(t *testing.T) {
		repo := newFakeAccountRepo()
		repo.failErr = errors.New("connection refused")
		_, err := NewCreateAccountUseCase(repo).Execute(context.Background(), CreateAccountInput{UserID: userID, Name: "Checking"})
		if kind := domainerror.KindOf(err); kind != domainerror.KindStore {
			t.Fatalf("kind = %v, want store", kind)
		}
	})
}

func TestListAccounts_TotalsAndArchived(t *testing.T) {
	repo := newFakeAccountRepo()
	userID := uuid.New()
	checking := entity.NewAccount(userID, "Checking", decimal.NewFromInt(1000), true)
	hidden := entity.NewAccount(userID, "Cash", decimal.NewFromInt(50), false)
	old := entity.NewAccount(userID, "Old", decimal.NewFromInt(300), true)
	old.IsArchived = true
	for _, a := range []*entity.Account{checking, hidden, old} {
		repo.accounts[a.ID] = a
	}
	repo.accounts[uuid.New()] = entity.NewAccount(uuid.New(), "Other user", decimal.NewFromInt(999), true)

	uc := NewListAccountsUseCase(repo)

	out, err := uc.Execute(context.Background(), ListAccountsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Accounts) != 2 {
		t.Errorf("accounts = %d, want 2", len(out.Accounts))
	}
	if !out.TotalBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total = %s, want 1000", out.TotalBalance)
	}

	out, err = uc.Execute(context.Background(), ListAccountsInput{UserID: userID, IncludeArchived: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Accounts) != 3 {
		t.Errorf("accounts with archived = %d, want 3", len(out.Accounts))
	}
}

func TestUpdateAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	pub := &recordingPublisher{}
	userID := uuid.New()
	a := entity.NewAccount(userID, "Checking", decimal.NewFromInt(1000), true)
	repo.accounts[a.ID] = a
	uc := NewUpdateAccountUseCase(repo, pub)

	name := "Main"
	archived := true
	out, err := uc.Execute(context.Background(), UpdateAccountInput{UserID: userID, AccountID: a.ID, Name: &name, IsArchived: &archived})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Account.Name != "Main" || !out.Account.IsArchived {
		t.Errorf("account = %+v", out.Account)
	}
	if !out.Account.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("balance changed to %s", out.Account.Balance)
	}
	if len(pub.events) != 1 || pub.events[0].Type != entity.ChangeAccountUpdated {
		t.Errorf("events = %+v", pub.events)
	}

	t.Run("other user's account", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateAccountInput{UserID: uuid.New(), AccountID: a.ID, Name: &name})
		if kind := domainerror.KindOf(err); kind != domainerror.KindNotFound {
			t.Fatalf("kind = %v, want not found", kind)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	userID := uuid.New()
	a := entity.NewAccount(userID, "Checking", decimal.Zero, true)
	repo.accounts[a.ID] = a
	uc := NewDeleteAccountUseCase(repo, nil)

	if err := uc.Execute(context.Background(), DeleteAccountInput{UserID: userID, AccountID: a.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := uc.Execute(context.Background(), DeleteAccountInput{UserID: userID, AccountID: a.ID})
	if !errors.Is(err, domainerror.ErrAccountNotFound) {
		t.Fatalf("second delete error = %v, want ErrAccountNotFound", err)
	}

	get := NewGetAccountUseCase(repo)
	if _, err := get.Execute(context.Background(), GetAccountInput{UserID: userID, AccountID: a.ID}); !errors.Is(err, domainerror.ErrAccountNotFound) {
		t.Fatalf("get after delete error = %v", err)
	}
}
