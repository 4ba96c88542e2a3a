// ABOUTME: Static flow definition table for the conversational state machine
// ABOUTME: Maps (flow, step) to message content, options, and transition metadata

package flow

// ID identifies a top-level conversation flow.
type ID string

// Flow identifiers.
const (
	FlowWelcome ID = "WELCOME"
	FlowInfoLab ID = "INFO_LAB"
	FlowRoles   ID = "ROLES"
	FlowSupport ID = "SUPPORT"
)

// Step identifies a position within a flow.
type Step string

// Step identifiers. A step is only meaningful relative to its flow.
const (
	StepInit                  Step = "INIT"
	StepAwaitingMenuRequest   Step = "AWAITING_MENU_REQUEST"
	StepAwaitingMenuSelection Step = "AWAITING_MENU_SELECTION"
	StepAwaitingIssue         Step = "AWAITING_ISSUE"
	StepAwaitingExit          Step = "AWAITING_EXIT"
)

// Node holds the content and transition metadata for one (flow, step) pair.
type Node struct {
	Message  string
	Options  []string
	NextStep Step
	Fallback string
}

// menuOptions is the main menu shown with the welcome message and repeated
// on invalid selections.
var menuOptions = []string{
	"A: Información del laboratorio",
	"B: Roles disponibles",
	"C: Soporte",
}

// definitions is the static flow table. It is populated once at process
// start and never mutated afterwards; access it through Lookup.
var definitions = map[ID]map[Step]Node{
	FlowWelcome: {
		StepInit: {
			Message: "¡Hola! 👋 Bienvenido al *Laboratorio AILucid Studio* 🧪\n\n" +
				"Somos un laboratorio digital enfocado en inteligencia artificial, automatización y desarrollo de software.",
			Options:  menuOptions,
			NextStep: StepAwaitingMenuSelection,
		},
		StepAwaitingMenuRequest: {
			Message:  "¿Te gustaría ver el menú principal?",
			Options:  []string{"Sí, ver menú", "No, gracias"},
			NextStep: StepAwaitingMenuSelection,
		},
		StepAwaitingMenuSelection: {
			Message: "*Menú Principal:*\n\nA: Información del laboratorio\nB: Roles disponibles\nC: Soporte\n\n" +
				"Por favor, selecciona una opción.",
			Options:  menuOptions,
			Fallback: "Por favor, responde con A, B o C.",
		},
	},
	FlowInfoLab: {
		StepInit: {
			Message: "📍 *Información del laboratorio*\n\n" +
				"*¿Quiénes somos?*\n" +
				"AILucid Studio es un laboratorio digital especializado en:\n" +
				"• Inteligencia Artificial\n• Automatización de procesos\n• Desarrollo de software a medida\n\n" +
				"*Nuestra misión:*\n" +
				"Construir sistemas inteligentes que impulsen el futuro del trabajo y la creatividad humana.\n\n" +
				"1. Volver al menú",
			NextStep: StepAwaitingExit,
		},
		StepAwaitingExit: {},
	},
	FlowRoles: {
		StepInit: {
			Message: "👥 *Roles disponibles*\n\n" +
				"Actualmente estamos evaluando talento para:\n" +
				"• Integrador de Sistemas\n• Arquitecto en Notion\n• Community Manager IA\n• Content Automation Specialist (CAS)\n\n" +
				"1. Volver al menú",
			NextStep: StepAwaitingExit,
		},
		StepAwaitingExit: {},
	},
	FlowSupport: {
		StepInit: {
			Message: "🛠 *Soporte*\n\n" +
				"Para soporte general puedes responder: \"hablar con soporte\".\n" +
				"En esta fase es soporte limitado porque estamos construyendo el sistema interno.",
			NextStep: StepAwaitingIssue,
		},
		StepAwaitingIssue: {
			Message: "Gracias. Hemos registrado tu solicitud. Un agente te contactará pronto.\n\n" +
				"1. Volver al menú",
			NextStep: StepAwaitingExit,
		},
		StepAwaitingExit: {},
	},
}

// Lookup returns the node for the given (flow, step) pair and whether it
// exists in the table.
func Lookup(flow ID, step Step) (Node, bool) {
	steps, ok := definitions[flow]
	if !ok {
		return Node{}, false
	}
	node, ok := steps[step]
	return node, ok
}

// welcomeNode returns the WELCOME/INIT node, the de-facto root state.
func welcomeNode() Node {
	node, _ := Lookup(FlowWelcome, StepInit)
	return node
}
