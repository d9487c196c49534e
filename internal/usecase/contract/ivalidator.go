package usecasecontract

type IValidator interface {
	ValidateEmail(email string) error
}
