package synonyms

// Dictionary maps a canonical concept term to the raw display terms related
// to it. Keys are expected to be normalized; members are stored as entered
// and normalized at index build time. The mapping is process-wide immutable
// configuration: it is read once when the expander is constructed and never
// mutated afterwards.
var Dictionary = map[string][]string{
	// Sintomas gripais e respiratórios
	"gripe": {
		"resfriado", "virose", "rinite", "tosse", "febre", "congestao nasal",
		"coriza", "dor de garganta", "dipirona", "paracetamol", "antitermico",
		"descongestionante", "vitamina c", "imunidade", "influenza", "h1n1",
		"espirro", "mal estar", "calafrios", "dor no corpo",
	},

	"diabetes": {
		"glicemia", "insulina", "hemoglobina glicada", "hipoglicemia",
		"hiperglicemia", "metformina", "glicose", "açucar no sangue",
		"diabetes mellitus", "tipo 1", "tipo 2", "glicosimetro",
	},

	"hipertensao": {
		"pressao alta", "anti-hipertensivo", "losartana", "enalapril",
		"amlodipina", "captopril", "pressao arterial", "hipertenso",
		"hidrolorotiazida", "diuretico",
	},

	"dor de cabeca": {
		"cefaleia", "enxaqueca", "migranea", "analgesico", "dor cabeca",
		"ibuprofeno", "paracetamol", "aspirina", "tensional",
	},

	"alergia": {
		"rinite alergica", "urticaria", "anti-histaminico", "loratadina",
		"prurido", "coceira", "alergenico", "antialergico", "desloratadina",
		"corticoide", "prednisolona",
	},

	"infeccao": {
		"antibiotico", "amoxicilina", "azitromicina", "inflamacao", "febre",
		"infeccioso", "bacteriana", "viral", "cefalexina", "ciprofloxacino",
	},

	"dor muscular": {
		"mialgia", "artralgia", "dor articular", "anti-inflamatorio",
		"nimesulida", "diclofenaco", "relaxante muscular", "dorflex",
		"torciculo", "lombalgia", "dor nas costas",
	},

	"gastrite": {
		"azia", "refluxo", "queimacao", "estomago", "omeprazol",
		"pantoprazol", "esomeprazol", "antiácido", "indigestao",
		"gastroesofagico", "ulcera",
	},

	"ansiedade": {
		"ansiolitico", "depressao", "antidepressivo", "sertralina",
		"fluoxetina", "escitalopram", "panico", "insonia", "estresse",
	},

	"colesterol": {
		"dislipidemia", "triglicerideos", "estatina", "sinvastatina",
		"atorvastatina", "rosuvastatina", "ldl", "hdl", "lipidograma",
	},

	"hemograma": {
		"exame de sangue", "leucocitos", "hemacias", "plaquetas",
		"hemoglobina", "hematocrito", "anemia", "leucograma",
	},

	"vacina": {
		"imunizacao", "dose", "reforco", "calendario vacinal",
		"covid", "gripe", "influenza", "tetano", "hepatite",
	},
}
