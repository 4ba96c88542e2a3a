// ABOUTME: Flow engine routing normalized user input through the conversation state machine
// ABOUTME: Loads context, decides the next (flow, step, variables), persists, and returns the reply

package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ailucid/flow-gateway/internal/store"
)

// Reply is the message content returned to the user.
type Reply struct {
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

// Replies for input or states the definition table has no content for.
const (
	stateErrorReply   = "Error de estado. Escribe RESET."
	supportErrorReply = "Error en soporte. Escribe MENU para reiniciar."
	exitPromptReply   = "Escribe 1 para volver al menú."
	invalidOptionText = "Opción no válida. Por favor envía A, B o C."
)

// variableLastTicketIssue stores the most recent support ticket text.
// The stored value is the normalized (trimmed, uppercased) input; the raw
// casing is not retained.
const variableLastTicketIssue = "lastTicketIssue"

// Engine routes messages through the per-user conversation state machine.
// It is stateless between calls; all conversation state lives in the store.
type Engine struct {
	store  store.Store
	logger *slog.Logger
}

// NewEngine creates a flow engine backed by the given store.
func NewEngine(s store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  s,
		logger: logger.With("component", "flow-engine"),
	}
}

// ProcessMessage routes one inbound message for userID and returns the reply.
// The input is normalized (trimmed, uppercased) before any routing. At most
// one state transition is persisted per message; replies for invalid input
// leave the stored state untouched.
func (e *Engine) ProcessMessage(ctx context.Context, userID, text string) (*Reply, error) {
	uc, err := e.store.GetOrCreateContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading context: %w", err)
	}

	msg := strings.ToUpper(strings.TrimSpace(text))

	// Global escape hatch: RESET or MENU always returns to the root state,
	// regardless of the current flow. Variables are left as-is.
	if msg == "RESET" || msg == "MENU" {
		return e.transition(ctx, uc.UserID, FlowWelcome, StepInit, nil, welcomeReply())
	}

	switch ID(uc.Flow) {
	case FlowWelcome:
		return e.handleWelcome(ctx, uc, msg)
	case FlowInfoLab, FlowRoles:
		return e.handleExitOnly(ctx, uc, msg)
	case FlowSupport:
		return e.handleSupport(ctx, uc, msg)
	default:
		// A flow outside the enum domain should be unreachable; recover by
		// resetting to the root state.
		e.logger.Warn("unknown flow on context, resetting", "user_id", userID, "flow", uc.Flow)
		return e.transition(ctx, uc.UserID, FlowWelcome, StepInit, nil, welcomeReply())
	}
}

// handleWelcome routes the WELCOME flow: greeting on INIT, then menu selection.
func (e *Engine) handleWelcome(ctx context.Context, uc *store.UserContext, msg string) (*Reply, error) {
	switch Step(uc.Step) {
	case StepInit:
		// First contact: greet and advance to menu selection
		return e.transition(ctx, uc.UserID, FlowWelcome, StepAwaitingMenuSelection, nil, welcomeReply())

	case StepAwaitingMenuSelection:
		switch {
		case msg == "A" || strings.Contains(msg, "INFO"):
			return e.transition(ctx, uc.UserID, FlowInfoLab, StepInit, nil, entryReply(FlowInfoLab))
		case msg == "B" || strings.Contains(msg, "ROLES"):
			return e.transition(ctx, uc.UserID, FlowRoles, StepInit, nil, entryReply(FlowRoles))
		case msg == "C" || strings.Contains(msg, "SOPORTE") || strings.Contains(msg, "SUPPORT"):
			return e.transition(ctx, uc.UserID, FlowSupport, StepInit, nil, entryReply(FlowSupport))
		default:
			return &Reply{Text: invalidOptionText, Options: menuOptions}, nil
		}

	default:
		return &Reply{Text: stateErrorReply}, nil
	}
}

// handleExitOnly routes the INFO_LAB and ROLES flows, which only wait for
// the user to return to the menu.
func (e *Engine) handleExitOnly(ctx context.Context, uc *store.UserContext, msg string) (*Reply, error) {
	if msg == "1" || strings.Contains(msg, "VOLVER") {
		return e.transition(ctx, uc.UserID, FlowWelcome, StepInit, nil, welcomeReply())
	}
	return &Reply{Text: exitPromptReply}, nil
}

// handleSupport routes the SUPPORT flow: prompt, capture the issue, exit.
func (e *Engine) handleSupport(ctx context.Context, uc *store.UserContext, msg string) (*Reply, error) {
	switch Step(uc.Step) {
	case StepInit:
		// Show the support prompt and wait for the issue description. The
		// triggering message is not captured as ticket content.
		return e.transition(ctx, uc.UserID, FlowSupport, StepAwaitingIssue, nil, entryReply(FlowSupport))

	case StepAwaitingIssue:
		// Capture the issue text, keeping any other accumulated variables
		vars := make(map[string]any, len(uc.Variables)+1)
		for k, v := range uc.Variables {
			vars[k] = v
		}
		vars[variableLastTicketIssue] = msg

		confirm, _ := Lookup(FlowSupport, StepAwaitingIssue)
		reply := &Reply{Text: confirm.Message}
		return e.transition(ctx, uc.UserID, FlowSupport, StepAwaitingExit, vars, reply)

	case StepAwaitingExit:
		if msg == "1" || strings.Contains(msg, "VOLVER") || strings.Contains(msg, "MENU") {
			// Support tickets must not leak into subsequent flows
			return e.transition(ctx, uc.UserID, FlowWelcome, StepInit, map[string]any{}, welcomeReply())
		}
		return &Reply{Text: exitPromptReply}, nil

	default:
		return &Reply{Text: supportErrorReply}, nil
	}
}

// transition persists the new (flow, step) pair, optionally replacing the
// stored variables, and returns the given reply. Every persisted pair must
// exist in the definition table; the engine never stores a state the table
// does not define.
func (e *Engine) transition(ctx context.Context, userID string, flow ID, step Step, variables map[string]any, reply *Reply) (*Reply, error) {
	if _, ok := Lookup(flow, step); !ok {
		return nil, fmt.Errorf("transition to undefined state (%s, %s)", flow, step)
	}

	f, s := string(flow), string(step)
	update := store.ContextUpdate{Flow: &f, Step: &s, Variables: variables}
	if _, err := e.store.UpdateContext(ctx, userID, update); err != nil {
		return nil, fmt.Errorf("persisting transition to (%s, %s): %w", flow, step, err)
	}

	return reply, nil
}

// welcomeReply is the greeting with the main menu options, shown on every
// arrival at WELCOME/INIT.
func welcomeReply() *Reply {
	node := welcomeNode()
	return &Reply{Text: node.Message, Options: node.Options}
}

// entryReply is the content shown when entering a flow from the menu.
func entryReply(flow ID) *Reply {
	node, _ := Lookup(flow, StepInit)
	return &Reply{Text: node.Message}
}
