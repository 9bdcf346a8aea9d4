// internal/input/keymap.go
package input

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys (Enter, arrows, etc.) to editor actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps plain runes to actions in normal mode.
type RuneKeymap map[rune]ActionEvent

// ModKeymap maps keys combined with modifiers (Ctrl, Alt, Shift).
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyLeft] = ActionSelectParent
	p.keymap[tcell.KeyRight] = ActionSelectChild
	p.keymap[tcell.KeyUp] = ActionSelectPrevSibling
	p.keymap[tcell.KeyDown] = ActionSelectNextSibling
	p.keymap[tcell.KeyPgUp] = ActionSelectPrevTree
	p.keymap[tcell.KeyPgDn] = ActionSelectNextTree
	p.keymap[tcell.KeyHome] = ActionSelectHome
	p.keymap[tcell.KeyEnter] = ActionApplyTool
	p.keymap[tcell.KeyDelete] = ActionDeleteNode
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlR] = ActionRedo
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	shiftMap := make(Keymap)
	shiftMap[tcell.KeyUp] = ActionScrollUp
	shiftMap[tcell.KeyDown] = ActionScrollDown
	shiftMap[tcell.KeyLeft] = ActionScrollLeft
	shiftMap[tcell.KeyRight] = ActionScrollRight
	p.modKeymap[tcell.ModShift] = shiftMap

	// --- Rune Mappings ---
	tools := map[rune]core.Tool{
		'0': core.ToolNone,
		'1': core.ToolAddFormula1,
		'2': core.ToolAddFormula2,
		'3': core.ToolAddFormula3,
		'.': core.ToolAddIndefinite,
		't': core.ToolAddTerm1,
		'T': core.ToolAddTerm2,
		'd': core.ToolToggleDivider,
		'a': core.ToolAnnotate,
		'A': core.ToolAnnotateSubtree,
		'x': core.ToolDelete,
		'o': core.ToolNewTree,
		'm': core.ToolMoveTree,
		'[': core.ToolMoveUp,
		']': core.ToolMoveDown,
	}
	for r, t := range tools {
		p.runeKeymap[r] = ActionEvent{Action: ActionSelectTool, Tool: t}
	}

	p.runeKeymap[' '] = ActionEvent{Action: ActionApplyTool}
	p.runeKeymap['y'] = ActionEvent{Action: ActionYank}
	p.runeKeymap['p'] = ActionEvent{Action: ActionPaste}
	p.runeKeymap['u'] = ActionEvent{Action: ActionUndo}
	p.runeKeymap['e'] = ActionEvent{Action: ActionEditLabel}
	p.runeKeymap['c'] = ActionEvent{Action: ActionEditConnector}
	p.runeKeymap['g'] = ActionEvent{Action: ActionSelectHome}
	p.runeKeymap['h'] = ActionEvent{Action: ActionSelectParent}
	p.runeKeymap['l'] = ActionEvent{Action: ActionSelectChild}
	p.runeKeymap['k'] = ActionEvent{Action: ActionSelectPrevSibling}
	p.runeKeymap['j'] = ActionEvent{Action: ActionSelectNextSibling}
	p.runeKeymap['H'] = ActionEvent{Action: ActionScrollLeft}
	p.runeKeymap['L'] = ActionEvent{Action: ActionScrollRight}
	p.runeKeymap['K'] = ActionEvent{Action: ActionScrollUp}
	p.runeKeymap['J'] = ActionEvent{Action: ActionScrollDown}
	p.runeKeymap[':'] = ActionEvent{Action: ActionEnterCommandMode}
	p.runeKeymap['/'] = ActionEvent{Action: ActionEnterFindMode}
	p.runeKeymap['n'] = ActionEvent{Action: ActionFindNext}
	p.runeKeymap['N'] = ActionEvent{Action: ActionFindPrevious}
}

// ProcessEvent decodes a key pressed in normal mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Modifier + Key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// tcell reports Ctrl+letter as its own key; don't let the modifier hide it
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	// 2. Plain special keys
	if key != tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	// 3. Runes. Shift is part of the rune itself ('T', 'N').
	if key == tcell.KeyRune && mod&^tcell.ModShift == tcell.ModNone {
		if ae, ok := p.runeKeymap[ev.Rune()]; ok {
			return ae
		}
	}
	return ActionEvent{Action: ActionUnknown}
}

// ProcessPromptEvent decodes a key typed into the command or find prompt,
// where every plain rune is text.
func (p *InputProcessor) ProcessPromptEvent(ev *tcell.EventKey) ActionEvent {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return ActionEvent{Action: ActionUnknown}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	case tcell.KeyEnter:
		return ActionEvent{Action: ActionInsertNewLine}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionEvent{Action: ActionDeleteCharBackward}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionEvent{Action: ActionQuit}
	}
	return ActionEvent{Action: ActionUnknown}
}
