package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/evmkit/ethabi/pkg/abi"
)

func loadContract(path string) *abi.Contract {
	f, err := os.Open(path)
	if err != nil {
		fail("contract", path, err)
	}
	defer f.Close()

	c, err := abi.LoadContract(f)
	if err != nil {
		fail("contract", path, err)
	}
	return c
}

// resolveFunction selects a function by bare name (when unambiguous) or by
// its full "name(type,type,...)" signature, to disambiguate overloads.
func resolveFunction(c *abi.Contract, nameOrSig string) *abi.Function {
	if !strings.Contains(nameOrSig, "(") {
		list, err := c.FunctionsByName(nameOrSig)
		if err != nil {
			fail("function", nameOrSig, err)
		}
		if len(list) > 1 {
			fail("function", nameOrSig, fmt.Errorf("%d overloads named %s; give the full signature", len(list), nameOrSig))
		}
		return &list[0]
	}

	name := nameOrSig[:strings.IndexByte(nameOrSig, '(')]
	list, err := c.FunctionsByName(name)
	if err != nil {
		fail("function", nameOrSig, err)
	}
	for i := range list {
		if strings.HasPrefix(nameOrSig, list[i].Name+"(") && list[i].Name+"("+joinInputs(&list[i])+")" == nameOrSig {
			return &list[i]
		}
	}
	fail("function", nameOrSig, abi.NewInvalidNameError(nameOrSig))
	return nil
}

func resolveEvent(c *abi.Contract, nameOrSig string) *abi.Event {
	if !strings.Contains(nameOrSig, "(") {
		ev, err := c.Event(nameOrSig)
		if err != nil {
			fail("event", nameOrSig, err)
		}
		return ev
	}

	name := nameOrSig[:strings.IndexByte(nameOrSig, '(')]
	list, err := c.EventsByName(name)
	if err != nil {
		fail("event", nameOrSig, err)
	}
	for i := range list {
		if list[i].Name+"("+joinEventInputs(&list[i])+")" == nameOrSig {
			return &list[i]
		}
	}
	fail("event", nameOrSig, abi.NewInvalidNameError(nameOrSig))
	return nil
}

func joinInputs(fn *abi.Function) string {
	parts := make([]string, len(fn.Inputs))
	for i, p := range fn.Inputs {
		parts[i] = p.Kind.String()
	}
	return strings.Join(parts, ",")
}

func joinEventInputs(ev *abi.Event) string {
	parts := make([]string, len(ev.Inputs))
	for i, p := range ev.Inputs {
		parts[i] = p.Kind.String()
	}
	return strings.Join(parts, ",")
}
