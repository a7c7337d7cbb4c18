package i18n

// Message keys used outside this package.
const (
	KeyAppName           = "appName"
	KeyAppTitle          = "appTitle"
	KeyEqualSplit        = "equalSplit"
	KeyByHours           = "byHours"
	KeyByPercentage      = "byPercentage"
	KeyResults           = "results"
	KeyTotalDistributed  = "totalDistributed"
	KeySplitEqually      = "splitEqually"
	KeyHoursWorked       = "hoursWorked"
	KeyPercentageOfTotal = "percentageOfTotal"
	KeyUnnamedEmployee   = "unnamedEmployee"
	KeyHistory           = "history"
	KeyHistoryEmpty      = "historyEmpty"
	KeyHistoryCleared    = "historyCleared"
	KeyEmployees         = "employees"
	KeyValidTipsAmount   = "validTipsAmount"
	KeyValidHours        = "validHours"
	KeyValidPercentages  = "validPercentages"
	KeyNoEmployees       = "noEmployees"
	KeyPercentageWarning = "percentageWarning"
	KeyAmountTooLarge    = "amountTooLarge"
	KeyLanguage          = "language"
)

var catalog = map[Language]map[string]string{
	English: {
		// Brand name, not translated.
		"appName":     "Tipout",
		"appTitle":    "Tip-Out Calculator",
		"appSubtitle": "Calculate fair tip distribution for your team",

		"totalTips":      "Total Tips",
		"enterTotalTips": "Enter total tips amount",

		"calculationMethod": "Calculation Method",
		"equalSplit":        "Equal Split",
		"byHours":           "By Hours",
		"byPercentage":      "By Percentage",

		"employees":    "Employees",
		"employeeName": "Employee {{number}} name",
		"hours":        "Hours",
		"percentage":   "%",

		"calculate": "Calculate Tip-Out",
		"reset":     "Reset",

		"results":           "Tip-Out Results",
		"totalDistributed":  "Total Distributed:",
		"splitEqually":      "Split equally among {{count}} people",
		"hoursWorked":       "{{hours}} hours × ${{rate}}/hour",
		"percentageOfTotal": "{{percentage}}% of total",
		"unnamedEmployee":   "Unnamed Employee",

		"history":        "Calculation History",
		"historyEmpty":   "No calculations yet",
		"historyCleared": "History cleared",
		"clearHistory":   "Clear all history",

		"validTipsAmount":   "Please enter a valid total tips amount",
		"validHours":        "Please enter valid hours for at least one employee",
		"validPercentages":  "Please enter valid percentages for at least one employee",
		"noEmployees":       "Please add at least one employee",
		"percentageWarning": "Warning: Percentages add up to {{total}}%, not 100%",
		"amountTooLarge":    "The amounts are too large to calculate",

		"language": "Language",
		"english":  "English",
		"spanish":  "Spanish",
	},
	Spanish: {
		"appTitle":    "Calculadora de Propinas",
		"appSubtitle": "Calcula la distribución justa de propinas para tu equipo",

		"totalTips":      "Total de Propinas",
		"enterTotalTips": "Ingresa el monto total de propinas",

		"calculationMethod": "Método de Cálculo",
		"equalSplit":        "División Igual",
		"byHours":           "Por Horas",
		"byPercentage":      "Por Porcentaje",

		"employees":    "Empleados",
		"employeeName": "Nombre del empleado {{number}}",
		"hours":        "Horas",
		"percentage":   "%",

		"calculate": "Calcular Propinas",
		"reset":     "Reiniciar",

		"results":           "Resultados de Propinas",
		"totalDistributed":  "Total Distribuido:",
		"splitEqually":      "Dividido igualmente entre {{count}} personas",
		"hoursWorked":       "{{hours}} horas × ${{rate}}/hora",
		"percentageOfTotal": "{{percentage}}% del total",
		"unnamedEmployee":   "Empleado Sin Nombre",

		"history":        "Historial de Cálculos",
		"historyEmpty":   "Aún no hay cálculos",
		"historyCleared": "Historial borrado",
		"clearHistory":   "Limpiar todo el historial",

		"validTipsAmount":   "Por favor ingresa un monto válido de propinas",
		"validHours":        "Por favor ingresa horas válidas para al menos un empleado",
		"validPercentages":  "Por favor ingresa porcentajes válidos para al menos un empleado",
		"noEmployees":       "Por favor agrega al menos un empleado",
		"percentageWarning": "Advertencia: Los porcentajes suman {{total}}%, no 100%",
		"amountTooLarge":    "Los montos son demasiado grandes para calcular",

		"language": "Idioma",
		"english":  "Inglés",
		"spanish":  "Español",
	},
}
