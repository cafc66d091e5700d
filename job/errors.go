package job

// ContractError reports host-side misuse of the pagination contract, such
// as querying a page with unusable geometry. It signals a programming error
// in the caller, not bad user data, and is never retried.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string { return "print contract violation: " + e.Msg }
