package curriculum

import (
	"fmt"

	"curriculum/internal/models"
	"curriculum/internal/qerrors"
)

// CascadeDeleter removes a module together with every content item it owns.
type CascadeDeleter struct {
	store *Store
}

// ContentCountFor returns how many content items the module owns right now. It is meant for
// confirmation prompts shown before DeleteModuleCascade is called.
func (c *CascadeDeleter) ContentCountFor(moduleID string) (int, error) {
	if c.store.moduleIndex(moduleID) < 0 {
		return 0, fmt.Errorf("%w: %s", qerrors.ModuleNotFoundError, moduleID)
	}

	count := 0
	for _, content := range c.store.content {
		if content.ModuleID == moduleID {
			count++
		}
	}
	return count, nil
}

// DeleteModuleCascade removes the module and all of its content, returning how many content items
// were removed. Both collections are rebuilt before either is replaced, so a reader sees the module
// and its content either both present or both gone.
func (c *CascadeDeleter) DeleteModuleCascade(moduleID string) (int, error) {
	s := c.store
	if s.moduleIndex(moduleID) < 0 {
		err := fmt.Errorf("%w: %s", qerrors.ModuleNotFoundError, moduleID)
		s.notifier.Notify(failed(OperationDelete, KindModule, moduleID, err))
		return 0, err
	}

	modules := make([]models.Module, 0, len(s.modules)-1)
	for _, m := range s.modules {
		if m.ID != moduleID {
			modules = append(modules, m)
		}
	}

	content := make([]models.Content, 0, len(s.content))
	for _, item := range s.content {
		if item.ModuleID != moduleID {
			content = append(content, item)
		}
	}
	removed := len(s.content) - len(content)

	s.modules, s.content = modules, content

	e := succeeded(OperationDelete, KindModule, moduleID)
	e.Removed = removed
	s.notifier.Notify(e)
	return removed, nil
}
