package starfield

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stateful           bool
	stateTransitioning bool
	exitRequested      bool
	started            bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any
	resourceOrder      []reflect.Type
	frame              uint64
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// UseModules installs modules immediately, in order.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

// Run drives the schedule until the final state is reached (stateful apps)
// or a system requests exit (stateless apps), then releases resources.
func (app *App) Run() {
	log := app.Logger()
	if app.stateful {
		log.Infof("running in stateful mode")
	} else {
		log.Infof("running in stateless mode")
	}

	for app.Step() {
	}

	log.Infof("stopped after %d frames", app.frame)
	app.releaseResources()
}

// Step runs one frame of the schedule and reports whether the app should keep going.
func (app *App) Step() bool {
	if !app.started {
		app.started = true
		if app.stateful {
			app.state = app.initialState
			app.callSystems(app.state, enter)
		}
	}

	app.callSystems(app.state, execute)
	app.frame++

	if app.stateful {
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}

		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			return false
		}
		return true
	}
	return !app.exitRequested
}

func (app *App) State() State {
	return app.state
}

func (app *App) Frame() uint64 {
	return app.frame
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		// On execute, stateless and always-run systems go first
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if !app.stateful {
			continue
		}
		if systemsInStage, ok := app.systems[stage.Name]; ok {
			if systemsInState, ok := systemsInStage[state]; ok {
				for _, system := range systemsInState[phase] {
					app.callSystem(system)
				}
			}
		}
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) requestExit() {
	app.exitRequested = true
	if app.stateful {
		app.changeState(app.finalState)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %v must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
		app.resourceOrder = append(app.resourceOrder, resourceType.Elem())
	}
	return app
}

func (app *App) hasResource(t reflect.Type) bool {
	_, ok := app.resources[t]
	return ok
}

// Resource returns the resource of type *T, if installed.
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

type releaser interface {
	Release()
}

// releaseResources releases resources in reverse order of installation.
func (app *App) releaseResources() {
	for i := len(app.resourceOrder) - 1; i >= 0; i-- {
		if r, ok := app.resources[app.resourceOrder[i]].(releaser); ok {
			r.Release()
		}
	}
}

var (
	typeOfCommands = reflect.TypeOf(&Commands{})
	typeOfLogger   = reflect.TypeOf((*Logger)(nil)).Elem()
)

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := range args {
		argType := systemType.In(i)
		arg, ok := app.resolveArg(argType)
		if !ok {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				systemType,
				argType,
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
		args[i] = arg
	}
	systemValue.Call(args)
}

// resolveArg maps a system parameter to *Commands, a resource pointer, or
// the first resource implementing an interface parameter. A Logger parameter
// always resolves.
func (app *App) resolveArg(argType reflect.Type) (reflect.Value, bool) {
	switch argType {
	case typeOfCommands:
		return reflect.ValueOf(app.Commands()), true
	case typeOfLogger:
		return reflect.ValueOf(app.Logger()), true
	}
	switch argType.Kind() {
	case reflect.Pointer:
		if resource, ok := app.resources[argType.Elem()]; ok {
			return reflect.ValueOf(resource), true
		}
	case reflect.Interface:
		for _, t := range app.resourceOrder {
			resource := app.resources[t]
			if reflect.TypeOf(resource).Implements(argType) {
				return reflect.ValueOf(resource).Convert(argType), true
			}
		}
	}
	return reflect.Value{}, false
}
