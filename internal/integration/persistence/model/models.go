package model

// All lists every model migrated at startup.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&AccountModel{},
		&CreditCardModel{},
		&CategoryModel{},
		&GoalModel{},
		&TransactionModel{},
		&BillModel{},
	}
}
