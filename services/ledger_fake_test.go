package services

import (
	"errors"

	"github.com/peklos/nextbank/models"
	"github.com/peklos/nextbank/storage"
)

// fakeLedger — хранилище в памяти для тестов денежных движков. Повторяет
// контракт Ledger, включая откат всех мутаций при ошибке внутри
// WithinTransaction.
type fakeLedger struct {
	clients      map[uint]*models.Client
	accounts     map[uint]*models.Account
	cards        map[uint]*models.Card
	loans        map[uint]*models.Loan
	transactions []models.Transaction
	processes    []models.Process
	nextID       uint

	failCreateTransaction bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		clients:  make(map[uint]*models.Client),
		accounts: make(map[uint]*models.Account),
		cards:    make(map[uint]*models.Card),
		loans:    make(map[uint]*models.Loan),
	}
}

func (f *fakeLedger) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeLedger) addClient(email string, info *models.PersonalInfo) *models.Client {
	client := &models.Client{
		ID:           f.id(),
		FirstName:    "Иван",
		LastName:     "Иванов",
		Email:        email,
		PersonalInfo: info,
	}
	f.clients[client.ID] = client
	return client
}

func (f *fakeLedger) addAccount(clientID uint, balance float64) *models.Account {
	account := &models.Account{
		ID:       f.id(),
		Balance:  balance,
		ClientID: clientID,
	}
	f.accounts[account.ID] = account
	return account
}

func (f *fakeLedger) addCard(clientID, accountID uint, number string) *models.Card {
	card := &models.Card{
		ID:         f.id(),
		CardNumber: number,
		CardType:   models.CardTypeDebit,
		IsActive:   true,
		ClientID:   clientID,
		AccountID:  accountID,
	}
	f.cards[card.ID] = card
	return card
}

func (f *fakeLedger) addLoan(clientID uint, amount, rate float64, termMonths int) *models.Loan {
	loan := &models.Loan{
		ID:           f.id(),
		Amount:       amount,
		InterestRate: rate,
		TermMonths:   termMonths,
		ClientID:     clientID,
	}
	f.loans[loan.ID] = loan
	return loan
}

func (f *fakeLedger) balance(accountID uint) float64 {
	return f.accounts[accountID].Balance
}

func (f *fakeLedger) WithinTransaction(fn func(tx storage.Tx) error) error {
	accounts := make(map[uint]*models.Account, len(f.accounts))
	for id, a := range f.accounts {
		copied := *a
		accounts[id] = &copied
	}
	loans := make(map[uint]*models.Loan, len(f.loans))
	for id, l := range f.loans {
		copied := *l
		loans[id] = &copied
	}
	transactions := make([]models.Transaction, len(f.transactions))
	copy(transactions, f.transactions)
	processes := make([]models.Process, len(f.processes))
	copy(processes, f.processes)
	nextID := f.nextID

	if err := fn(f); err != nil {
		f.accounts = accounts
		f.loans = loans
		f.transactions = transactions
		f.processes = processes
		f.nextID = nextID
		return err
	}
	return nil
}

func (f *fakeLedger) ActiveCardOfClient(cardID, clientID uint) (*models.Card, error) {
	card, ok := f.cards[cardID]
	if !ok || card.ClientID != clientID || !card.IsActive {
		return nil, storage.ErrNotFound
	}
	return f.cardWithAccount(card)
}

func (f *fakeLedger) ActiveCardByNumber(number string) (*models.Card, error) {
	for _, card := range f.cards {
		if card.CardNumber == number && card.IsActive {
			return f.cardWithAccount(card)
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeLedger) cardWithAccount(card *models.Card) (*models.Card, error) {
	account, ok := f.accounts[card.AccountID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *card
	copied.Account = *account
	if client, ok := f.clients[card.ClientID]; ok {
		copied.Client = *client
	}
	return &copied, nil
}

func (f *fakeLedger) LoanOfClient(loanID, clientID uint) (*models.Loan, error) {
	loan, ok := f.loans[loanID]
	if !ok || loan.ClientID != clientID {
		return nil, storage.ErrNotFound
	}
	copied := *loan
	return &copied, nil
}

func (f *fakeLedger) LoansOfClient(clientID uint) ([]models.Loan, error) {
	loans := []models.Loan{}
	for _, loan := range f.loans {
		if loan.ClientID == clientID {
			loans = append(loans, *loan)
		}
	}
	return loans, nil
}

func (f *fakeLedger) ClientByID(id uint) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *client
	return &copied, nil
}

func (f *fakeLedger) SaveAccount(account *models.Account) error {
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeLedger) SaveLoan(loan *models.Loan) error {
	copied := *loan
	f.loans[loan.ID] = &copied
	return nil
}

func (f *fakeLedger) CreateLoan(loan *models.Loan) error {
	loan.ID = f.id()
	copied := *loan
	f.loans[loan.ID] = &copied
	return nil
}

func (f *fakeLedger) CreateProcess(process *models.Process) error {
	process.ID = f.id()
	f.processes = append(f.processes, *process)
	return nil
}

func (f *fakeLedger) CreateTransaction(transaction *models.Transaction) error {
	if f.failCreateTransaction {
		return errors.New("запись транзакции недоступна")
	}
	transaction.ID = f.id()
	f.transactions = append(f.transactions, *transaction)
	return nil
}
