package reference

// unitCatalog is the fixed hospital unit layout. Codes and bed counts match
// the target schema's seed expectations; ED and the critical-care units are
// looked up by code elsewhere.
var unitCatalog = []struct {
	Code string
	Name string
	Beds int
}{
	{"ICU", "Intensive Care Unit", 20},
	{"MICU", "Medical ICU", 16},
	{"SICU", "Surgical ICU", 16},
	{"CCU", "Cardiac Care Unit", 12},
	{"ED", "Emergency Department", 30},
	{"PACU", "Post-Anesthesia Care Unit", 10},
	{"OR", "Operating Room", 8},
	{"L&D", "Labor & Delivery", 15},
	{"NICU", "Neonatal ICU", 20},
	{"MS1", "Medical Surgical 1", 30},
	{"MS2", "Medical Surgical 2", 30},
	{"MS3", "Medical Surgical 3", 30},
	{"TELE", "Telemetry", 24},
	{"ONCO", "Oncology", 20},
	{"ORTHO", "Orthopedics", 25},
}

var specialties = []string{
	"Internal Medicine", "Emergency Medicine", "Critical Care", "Cardiology",
	"Pulmonology", "Nephrology", "Gastroenterology", "Neurology", "Surgery",
	"Orthopedics", "Anesthesiology", "Nursing", "Pharmacy",
}

var providerTitles = []string{"MD", "DO", "NP", "PA", "RN", "PharmD"}

var departments = []string{"Medicine", "Surgery", "Emergency", "ICU", "Pediatrics"}

var floors = []string{"1", "2", "3", "4", "5", "B", "G"}

var buildings = []string{"Main", "North", "South", "East", "West"}

// formulary is the curated head of the medication list. Schedule "" means
// not a controlled substance.
var formulary = []struct {
	Name     string
	Generic  string
	Brand    string
	Class    string
	Schedule string
	Route    string
	Form     string
}{
	{"Acetaminophen", "Acetaminophen", "Tylenol", "Analgesic", "", "PO", "tablet"},
	{"Aspirin", "Aspirin", "Bayer", "Antiplatelet", "", "PO", "tablet"},
	{"Atorvastatin", "Atorvastatin", "Lipitor", "Statin", "", "PO", "tablet"},
	{"Metoprolol", "Metoprolol", "Lopressor", "Beta Blocker", "", "PO", "tablet"},
	{"Lisinopril", "Lisinopril", "Prinivil", "ACE Inhibitor", "", "PO", "tablet"},
	{"Furosemide", "Furosemide", "Lasix", "Loop Diuretic", "", "IV", "injection"},
	{"Warfarin", "Warfarin", "Coumadin", "Anticoagulant", "", "PO", "tablet"},
	{"Insulin Regular", "Insulin Regular", "Humulin R", "Insulin", "", "SubQ", "injection"},
	{"Morphine", "Morphine", "MS Contin", "Opioid", "II", "IV", "injection"},
	{"Fentanyl", "Fentanyl", "Sublimaze", "Opioid", "II", "IV", "injection"},
	{"Midazolam", "Midazolam", "Versed", "Benzodiazepine", "IV", "IV", "injection"},
	{"Propofol", "Propofol", "Diprivan", "Anesthetic", "", "IV", "injection"},
	{"Vancomycin", "Vancomycin", "Vancocin", "Antibiotic", "", "IV", "injection"},
	{"Piperacillin-Tazobactam", "Piperacillin-Tazobactam", "Zosyn", "Antibiotic", "", "IV", "injection"},
	{"Ceftriaxone", "Ceftriaxone", "Rocephin", "Antibiotic", "", "IV", "injection"},
	{"Heparin", "Heparin", "Heparin", "Anticoagulant", "", "SubQ", "injection"},
	{"Enoxaparin", "Enoxaparin", "Lovenox", "Anticoagulant", "", "SubQ", "injection"},
	{"Omeprazole", "Omeprazole", "Prilosec", "Proton Pump Inhibitor", "", "PO", "capsule"},
	{"Ondansetron", "Ondansetron", "Zofran", "Antiemetic", "", "IV", "injection"},
	{"Metformin", "Metformin", "Glucophage", "Antidiabetic", "", "PO", "tablet"},
}

// highAlert lists the formulary entries flagged high-alert per ISMP.
var highAlert = map[string]bool{
	"Insulin Regular": true,
	"Heparin":         true,
	"Warfarin":        true,
	"Morphine":        true,
	"Fentanyl":        true,
}

// Filler-medication name fragments used once the curated formulary is
// exhausted.
var (
	fillerStems = []string{
		"Cardi", "Nephro", "Pulmo", "Gastro", "Neuro", "Hema", "Dermo",
		"Osteo", "Immuno", "Endo", "Thrombo", "Veno", "Lipo", "Glyco",
		"Reno", "Hepato", "Bronchi", "Myo", "Angio", "Cyto",
	}
	fillerSuffixes = []string{
		"azole", "mycin", "cillin", "pril", "olol", "sartan", "statin",
		"prazole", "dipine", "floxacin", "zepam", "terol",
	}
	fillerModifiers = []string{"", " SR", " XR", " ER", " DS"}
	fillerBrands    = []string{"Medex", "Healin", "Vitol", "Curan", "Zenix", "Relivan", "Normex", "Clarin"}
	fillerClasses   = []string{"Antibiotic", "Analgesic", "Antihypertensive", "Anticoagulant"}
	fillerRoutes    = []string{"PO", "IV", "IM", "SubQ", "Topical"}
	fillerForms     = []string{"tablet", "capsule", "injection", "cream", "solution"}
)
