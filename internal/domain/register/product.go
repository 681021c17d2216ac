package register

// Product is a catalog record resolved by code. Immutable once fetched.
type Product struct {
	ID    string
	Code  string
	Name  string
	Price int64
}
