package plcp

type Facility struct {
	ID   int     `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Cost float64 `json:"cost"`
}

type Client struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand float64 `json:"demand"`
}

// Instance is a parsed PLCP instance. NumFacilities and NumClients always
// match the slices; the header counts are kept only for reference.
type Instance struct {
	Name string `json:"name"`

	NumFacilities    int        `json:"n_fac"`
	NumClients       int        `json:"n_cli"`
	HeaderFacilities int        `json:"header_n_fac"`
	HeaderClients    int        `json:"header_n_cli"`
	Facilities       []Facility `json:"facilities"`
	Clients          []Client   `json:"clients"`
}

// Solution is the outcome of one (instance, radius, engine) run. LB, UB and
// Gap are nil when the engine found no incumbent.
type Solution struct {
	LB        *float64 `json:"lb"`
	UB        *float64 `json:"ub"`
	Gap       *float64 `json:"gap"`
	Time      float64  `json:"time"`
	Opened    []int    `json:"opened"`
	Covered   []int    `json:"covered"`
	ModelFile string   `json:"model_file"`
	Status    string   `json:"status"`
	Optimal   bool     `json:"optimal"`
}

// Record is one row of the results table.
type Record struct {
	Instance string   `json:"instance"`
	Solver   string   `json:"solver"`
	R        float64  `json:"r"`
	LB       *float64 `json:"lb"`
	UB       *float64 `json:"ub"`
	Gap      *float64 `json:"gap"`
	Time     float64  `json:"time"`
	Comment  string   `json:"comment"`

	SolutionFile string `json:"solution_file"`
	// Failed marks a run whose engine returned an error. It has no time and
	// is left out of the averages.
	Failed bool `json:"failed,omitempty"`
}

// Report is what gets written to results.json.
type Report struct {
	Config  Config   `json:"config"`
	System  SysInfo  `json:"system"`
	Records []Record `json:"records"`
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}
