package internal

type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderUndefined Gender = "undefined"
)

type Religion string

const (
	ReligionIslam     Religion = "islam"
	ReligionChristian Religion = "christian"
	ReligionBuddhist  Religion = "buddhist"
	ReligionHindu     Religion = "hindu"
	ReligionConfucian Religion = "confucian"
	ReligionOther     Religion = "other"
)

type Education string

const (
	EducationSD    Education = "sd"
	EducationSMP   Education = "smp"
	EducationSMA   Education = "sma"
	EducationD1    Education = "d1"
	EducationD2    Education = "d2"
	EducationD3    Education = "d3"
	EducationS1    Education = "s1"
	EducationS2    Education = "s2"
	EducationS3    Education = "s3"
	EducationOther Education = "other"
)

type RowStatus string

type ErrorCode string

const (
	RowSuccess RowStatus = "success"
	RowError   RowStatus = "error"

	CodeDuplicateNIK     ErrorCode = "DUPLICATE_NIK"
	CodeDuplicateEmail   ErrorCode = "DUPLICATE_EMAIL"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

type RawRecord struct {
	RowNumber int
	Values    map[string]string
}

type ParseResult struct {
	Headers      []string
	Records      []RawRecord
	TotalRows    int
	HeaderRow    int
	DataStartRow int
}

type ColumnMapping struct {
	Columns         map[string]string `json:"columns"`
	Confidence      float64           `json:"confidence"`
	MissingRequired []string          `json:"missingRequired"`
}

type NormalizedUser struct {
	RowNumber  int
	NIK        string
	Name       string
	Email      string
	Gender     Gender
	Phone      string
	BirthPlace *string
	BirthDate  *string
	Religion   *Religion
	Education  *Education
	Address    *string
}

type RowOutcome struct {
	RowNumber int        `json:"rowNumber"`
	NIK       string     `json:"nik"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    RowStatus  `json:"status"`
	Field     *string    `json:"field,omitempty"`
	Message   *string    `json:"message,omitempty"`
	Code      *ErrorCode `json:"code,omitempty"`
}

type BatchSummary struct {
	ValidRows       int          `json:"validRows"`
	InvalidRows     int          `json:"invalidRows"`
	DuplicateNiks   int          `json:"duplicateNiks"`
	DuplicateEmails int          `json:"duplicateEmails"`
	Results         []RowOutcome `json:"results"`
}

type ImportRun struct {
	ID              string
	Source          string
	InputType       string
	Confidence      float64
	TotalRows       int
	ValidRows       int
	InvalidRows     int
	DuplicateNiks   int
	DuplicateEmails int
	CreatedAt       string
}

type Participant struct {
	ID         int
	NIK        string
	Name       string
	Email      string
	Gender     string
	Phone      *string
	BirthPlace *string
	BirthDate  *string
	Religion   *string
	Education  *string
	Address    *string
	ImportID   string
	CreatedAt  string
	UpdatedAt  string
}
