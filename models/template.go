package models

// OfferTemplateData поля, доступные в шаблоне письма-предложения
type OfferTemplateData struct {
	CandidateName  string
	JobTitle       string
	Department     string
	ProposedSalary string
	StartDate      string
	SentDate       string
	RecruiterName  string
	CompanyName    string
	CompanyAddress string
	CompanyContact string
	Files          TemplateFiles
}

type TemplateFiles struct {
	Logo *File
	Sign *File
}

type File struct {
	FileName    string
	ContentType string
	Body        []byte
}

// CompanyInfo реквизиты компании в шапке писем
type CompanyInfo struct {
	Name    string
	Address string
	Contact string
	LogoKey string // ключ файла логотипа в хранилище
	SignKey string // ключ файла подписи в хранилище
}
