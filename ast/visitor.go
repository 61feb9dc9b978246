// File: visitor.go
// Title: CLIScript AST Visitor
// Description: Implements the visitor pattern for traversing CLIScript AST
//              nodes. Walk performs the traversal and dispatches to the
//              visitor at every node; BaseVisitor provides no-op defaults
//              so that concrete visitors only override the methods they
//              need.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial visitor pattern implementation

package ast

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitScript(script *Script) interface{}
	VisitAppName(appName *AppName) interface{}
	VisitUseModule(use *UseModule) interface{}
	VisitRootOptionSet(root *RootOptionSet) interface{}
	VisitCommand(cmd *Command) interface{}
	VisitDefaultCommand(cmd *DefaultCommand) interface{}
	VisitOptionDef(opt *OptionDef) interface{}
	VisitArgumentDef(arg *ArgumentDef) interface{}
	VisitActionBinding(action *ActionBinding) interface{}
}

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed this in concrete visitors to only override needed methods.
type BaseVisitor struct{}

func (bv *BaseVisitor) VisitScript(script *Script) interface{} { return nil }

func (bv *BaseVisitor) VisitAppName(appName *AppName) interface{} { return nil }

func (bv *BaseVisitor) VisitUseModule(use *UseModule) interface{} { return nil }

func (bv *BaseVisitor) VisitRootOptionSet(root *RootOptionSet) interface{} { return nil }

func (bv *BaseVisitor) VisitCommand(cmd *Command) interface{} { return nil }

func (bv *BaseVisitor) VisitDefaultCommand(cmd *DefaultCommand) interface{} { return nil }

func (bv *BaseVisitor) VisitOptionDef(opt *OptionDef) interface{} { return nil }

func (bv *BaseVisitor) VisitArgumentDef(arg *ArgumentDef) interface{} { return nil }

func (bv *BaseVisitor) VisitActionBinding(action *ActionBinding) interface{} { return nil }

// Walk traverses the node depth-first, dispatching to the visitor at
// every node it passes
func Walk(node Node, visitor Visitor) interface{} {
	if node == nil {
		return nil
	}
	result := node.Accept(visitor)

	switch n := node.(type) {
	case *Script:
		if n.AppName != nil {
			Walk(n.AppName, visitor)
		}
		for _, use := range n.Uses {
			Walk(use, visitor)
		}
		if n.Root != nil {
			Walk(n.Root, visitor)
		}
		for _, cmd := range n.Commands {
			Walk(cmd, visitor)
		}
		if n.Default != nil {
			Walk(n.Default, visitor)
		}

	case *RootOptionSet:
		for _, opt := range n.Options {
			Walk(opt, visitor)
		}

	case *Command:
		walkBody(n.Body, visitor)

	case *DefaultCommand:
		walkBody(n.Body, visitor)

	case *OptionDef:
		if n.Action != nil {
			Walk(n.Action, visitor)
		}
	}

	return result
}

func walkBody(body *Body, visitor Visitor) {
	if body == nil {
		return
	}
	for _, opt := range body.Options {
		Walk(opt, visitor)
	}
	for _, arg := range body.Arguments {
		Walk(arg, visitor)
	}
	if body.Action != nil {
		Walk(body.Action, visitor)
	}
}
