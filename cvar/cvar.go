// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"sort"
	"strconv"
	"strings"

	"godoom/conlog"

	"github.com/pkg/errors"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE     flag = 0
	ARCHIVE  flag = 1
	NOTIFY   flag = 1 << 1
	ROM      flag = 1 << 6
	CALLBACK flag = 1 << 16
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	notify   bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func All() []*Cvar {
	return cvarArray
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) Notify() bool {
	return cv.notify
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.notify {
		conlog.Printf("\"%s\" changed to \"%s\"", cv.name, s)
	}
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) DefaultValue() string {
	return cv.defaultValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

func (cv *Cvar) Int() int {
	return int(cv.value)
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		cv.SetByString(v)
	} else {
		v := strconv.FormatFloat(float64(value), 'f', -1, 32)
		cv.SetByString(v)
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[strings.ToLower(name)]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	if id < 0 || id >= len(cvarArray) {
		return nil, errors.Errorf("cvar id %d out of bounds", id)
	}
	return cvarArray[id], nil
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.SetByString(value)
	pos := len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	cv.id = pos
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	name = strings.ToLower(name)
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}

	cv := create(name, value)

	if flags&ARCHIVE != 0 {
		cv.archive = true
	}
	if flags&NOTIFY != 0 {
		cv.notify = true
	}
	if flags&ROM != 0 {
		cv.rom = true
	}

	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		panic(err.Error())
	}
	return cv
}

// Set assigns value to an existing cvar or creates a user defined one.
func Set(name, value string) error {
	if name == "" {
		return errors.New("set: empty cvar name")
	}
	if cv, ok := Get(name); ok {
		if cv.rom {
			return errors.Errorf("set: %s is read only", cv.name)
		}
		cv.SetByString(value)
		return nil
	}
	cv := create(strings.ToLower(name), value)
	cv.user = true
	return nil
}

// Execute handles a "name [value]" line. It returns false if the first
// argument does not name a cvar.
func Execute(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0])
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"", cv.Name(), cv.String())
		return true, nil
	}
	return true, Set(cv.name, args[1])
}

// ResetAll resets every cvar to its default value.
func ResetAll() {
	for _, cv := range All() {
		cv.Reset()
	}
}

// List returns the names of all cvars sorted.
func List() []string {
	names := make([]string, 0, len(cvarArray))
	for _, cv := range cvarArray {
		names = append(names, cv.name)
	}
	sort.Strings(names)
	return names
}
