package workflow

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"curriculum/internal/curriculum"
	"curriculum/internal/models"
	"curriculum/internal/qerrors"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Store is the set of mutations a save can be routed to.
type Store interface {
	CreateModule(c *models.CreateModuleRequest) *models.Module
	UpdateModule(c *models.EditModuleRequest) (*models.Module, error)
	CreateContent(c *models.CreateContentRequest) (*models.Content, error)
	UpdateContent(c *models.EditContentRequest) (*models.Content, error)
}

type Phase int

const (
	Idle Phase = iota
	EditingModule
	EditingContent
)

func (p Phase) String() string {
	switch p {
	case EditingModule:
		return "editing_module"
	case EditingContent:
		return "editing_content"
	default:
		return "idle"
	}
}

// State is what is currently being added or edited. A nil Module (while EditingModule) or nil
// Content (while EditingContent) means a new entity is being created.
type State struct {
	Phase Phase
	// Module is the module being edited.
	Module *models.Module
	// Parent is the module that owns the content being added or edited.
	Parent *models.Module
	// Content is the content item being edited.
	Content *models.Content
}

// Creating reports whether a save would create a new entity rather than update one.
func (s State) Creating() bool {
	switch s.Phase {
	case EditingModule:
		return s.Module == nil
	case EditingContent:
		return s.Content == nil
	}
	return false
}

// Result is the outcome of a successful save.
type Result struct {
	Kind    curriculum.EntityKind
	Created bool
	Module  *models.Module
	Content *models.Content
}

// Controller routes a single Save to the right store mutation depending on what is being added or
// edited. Begin* calls are only accepted while idle.
type Controller struct {
	store Store
	state State
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) BeginAddModule() error {
	return c.begin(State{Phase: EditingModule})
}

func (c *Controller) BeginEditModule(m *models.Module) error {
	if m == nil {
		return fmt.Errorf("%w: no module to edit", qerrors.ModuleNotFoundError)
	}
	existing := *m
	return c.begin(State{Phase: EditingModule, Module: &existing})
}

func (c *Controller) BeginAddContent(parent *models.Module) error {
	if parent == nil {
		return fmt.Errorf("%w: no parent module", qerrors.InvalidParentError)
	}
	p := *parent
	return c.begin(State{Phase: EditingContent, Parent: &p})
}

func (c *Controller) BeginEditContent(parent *models.Module, content *models.Content) error {
	if parent == nil || content == nil || content.ModuleID != parent.ID {
		return fmt.Errorf("%w: content must be edited under its own module", qerrors.InvalidParentError)
	}
	p, existing := *parent, *content
	return c.begin(State{Phase: EditingContent, Parent: &p, Content: &existing})
}

// Cancel discards whatever was being added or edited.
func (c *Controller) Cancel() {
	c.state = State{}
}

// Save applies fields to the entity being added or edited. On a validation failure the state is
// kept so the input can be corrected; any other outcome returns the controller to idle.
func (c *Controller) Save(fields map[string]interface{}) (*Result, error) {
	var (
		res *Result
		err error
	)
	switch c.state.Phase {
	case EditingModule:
		res, err = c.saveModule(fields)
	case EditingContent:
		res, err = c.saveContent(fields)
	default:
		return nil, qerrors.NoActiveEditError
	}

	if err != nil && errors.Is(err, qerrors.ValidationFailedError) {
		return nil, err
	}
	c.state = State{}
	return res, err
}

func (c *Controller) begin(next State) error {
	if c.state.Phase != Idle {
		return fmt.Errorf("%w: currently %s", qerrors.EditInProgressError, c.state.Phase)
	}
	c.state = next
	return nil
}

func (c *Controller) saveModule(fields map[string]interface{}) (*Result, error) {
	existing := c.state.Module
	if existing == nil {
		var req models.CreateModuleRequest
		if err := decodeFields(fields, &req); err != nil {
			return nil, err
		}
		if err := validateFields(&req); err != nil {
			return nil, err
		}
		return &Result{Kind: curriculum.KindModule, Created: true, Module: c.store.CreateModule(&req)}, nil
	}

	var req models.EditModuleRequest
	if err := decodeFields(fields, &req); err != nil {
		return nil, err
	}
	req.ModuleID = existing.ID
	merged := models.CreateModuleRequest{
		Title:       valueOr(req.Title, existing.Title),
		Description: valueOr(req.Description, existing.Description),
	}
	if err := validateFields(&merged); err != nil {
		return nil, err
	}

	m, err := c.store.UpdateModule(&req)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: curriculum.KindModule, Module: m}, nil
}

func (c *Controller) saveContent(fields map[string]interface{}) (*Result, error) {
	parent, existing := c.state.Parent, c.state.Content
	if existing == nil {
		var req models.CreateContentRequest
		if err := decodeFields(fields, &req); err != nil {
			return nil, err
		}
		req.ModuleID = parent.ID
		if err := validateFields(&req); err != nil {
			return nil, err
		}
		content, err := c.store.CreateContent(&req)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: curriculum.KindContent, Created: true, Content: content}, nil
	}

	var req models.EditContentRequest
	if err := decodeFields(fields, &req); err != nil {
		return nil, err
	}
	req.ContentID = existing.ID
	merged := models.CreateContentRequest{
		ModuleID:        parent.ID,
		Title:           valueOr(req.Title, existing.Title),
		Type:            valueOr(req.Type, existing.Type),
		FileURL:         valueOr(req.FileURL, existing.FileURL),
		YouTubeURL:      valueOr(req.YouTubeURL, existing.YouTubeURL),
		ExternalURL:     valueOr(req.ExternalURL, existing.ExternalURL),
		DurationMinutes: valueOr(req.DurationMinutes, existing.DurationMinutes),
		FileSizeMB:      valueOr(req.FileSizeMB, existing.FileSizeMB),
	}
	if err := validateFields(&merged); err != nil {
		return nil, err
	}

	content, err := c.store.UpdateContent(&req)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: curriculum.KindContent, Content: content}, nil
}

// Helpers

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by the names callers send them under.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// decodeFields copies a field map onto a request struct. Keys that the request does not accept,
// such as id, order or module_id, are rejected. The target id is never taken from fields; callers
// set it after decoding.
func decodeFields(fields map[string]interface{}, out interface{}) error {
	// mapstructure matches a "-" tag literally instead of skipping the field.
	if _, ok := fields["-"]; ok {
		return fmt.Errorf("%w: '' has invalid keys: -", qerrors.ValidationFailedError)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  wholeNumberHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("%w: %v", qerrors.ValidationFailedError, err)
	}
	return nil
}

// wholeNumberHook rejects fractional numbers for integer fields. JSON numbers arrive as float64,
// which mapstructure would otherwise truncate.
func wholeNumberHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() == reflect.Ptr {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected a whole number, got %v", f)
	}
	return data, nil
}

func validateFields(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", qerrors.ValidationFailedError, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", qerrors.ValidationFailedError, strings.Join(problems, ", "))
}

func valueOr[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
