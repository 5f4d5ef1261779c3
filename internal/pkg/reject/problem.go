package reject

// Problem is the uniform error payload returned by every route:
// {"success":false,"error":"...","details":"..."}.
type Problem struct {
	Success bool   `json:"success"`
	Status  int    `json:"-"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ProblemWithTrace pairs the client-facing problem with the underlying cause
// so services can hand both back to the handler layer.
type ProblemWithTrace struct {
	Problem Problem
	Cause   error
}

func NewProblem() *Problem {
	return &Problem{}
}

func (p *Problem) WithStatus(status int) *Problem {
	p.Status = status
	return p
}

func (p *Problem) WithError(message string) *Problem {
	p.Error = message
	return p
}

func (p *Problem) WithDetails(details string) *Problem {
	p.Details = details
	return p
}

func (p *Problem) WithCode(code string) *Problem {
	p.Code = code
	return p
}

func (p *Problem) Build() Problem {
	return *p
}
