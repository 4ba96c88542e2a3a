// Package flow implements the conversational state machine for flow-gateway.
//
// # State Machine
//
// Conversation state is a (flow, step) pair backed by a static definition
// table. The engine is a pure router: given the stored context and the
// normalized input it decides the next state and the reply, then persists
// the decision through the store.
//
//	(WELCOME,INIT) --any--> (WELCOME,AWAITING_MENU_SELECTION)
//	(WELCOME,AWAITING_MENU_SELECTION) --A/INFO--> (INFO_LAB,INIT)
//	(WELCOME,AWAITING_MENU_SELECTION) --B/ROLES--> (ROLES,INIT)
//	(WELCOME,AWAITING_MENU_SELECTION) --C/SOPORTE--> (SUPPORT,INIT)
//	(INFO_LAB,*) --1/VOLVER--> (WELCOME,INIT)
//	(ROLES,*) --1/VOLVER--> (WELCOME,INIT)
//	(SUPPORT,INIT) --any--> (SUPPORT,AWAITING_ISSUE)
//	(SUPPORT,AWAITING_ISSUE) --any--> (SUPPORT,AWAITING_EXIT)   captures issue text
//	(SUPPORT,AWAITING_EXIT) --1/VOLVER/MENU--> (WELCOME,INIT)   clears variables
//	any state --RESET/MENU--> (WELCOME,INIT)
//
// There is no terminal state; WELCOME/INIT is the idle root reachable from
// everywhere via the RESET/MENU override.
//
// # Normalization
//
// Input is trimmed and uppercased once, before any routing. Matching is
// exact-token or substring only. The captured support ticket text is stored
// in its normalized form.
//
// # Invariants
//
//   - Every persisted (flow, step) pair exists in the definition table.
//   - At most one state transition is persisted per message.
//   - Invalid input replies without mutating state, so repeating the same
//     invalid input yields the same reply.
package flow
