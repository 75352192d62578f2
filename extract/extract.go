// Package extract walks a parsed C translation unit and catalogs its struct,
// enum and function declarations.
package extract

import (
	"github.com/sirupsen/logrus"
	"modernc.org/cc/v3"

	"github.com/kbolino/go-clay-codegen/ctype"
)

// Anonymous stands in for the name of an unnamed member in diagnostics.
const Anonymous = "(anonymous)"

type extractor struct {
	cat *Catalog
}

// Extract builds a Catalog from ast. Declarations that cannot be resolved
// are recorded with a nil type rather than rejected.
func Extract(ast *cc.AST) *Catalog {
	x := &extractor{cat: NewCatalog()}
	if ast == nil {
		return x.cat
	}
	// translation_unit
	//   : external_declaration
	//   | translation_unit external_declaration
	//   ;
	for tu := ast.TranslationUnit; tu != nil; tu = tu.TranslationUnit {
		// external_declaration
		//   : function_definition
		//   | declaration
		//   ;
		ed := tu.ExternalDeclaration
		if ed == nil {
			continue
		}
		if fd := ed.FunctionDefinition; fd != nil {
			x.function(fd.DeclarationSpecifiers, fd.Declarator)
		} else if decln := ed.Declaration; decln != nil {
			x.declaration(decln)
		}
	}
	logrus.WithFields(logrus.Fields{
		"structs":   len(x.cat.Structs),
		"enums":     len(x.cat.Enums),
		"functions": len(x.cat.Functions),
	}).Debug("extracted symbols")
	return x.cat
}

func (x *extractor) declaration(decln *cc.Declaration) {
	// declaration
	//   : declaration_specifiers ';'
	//   | declaration_specifiers init_declarator_list ';'
	//   ;
	typedef := false
	var aggregate *cc.StructOrUnionSpecifier
	var enum *cc.EnumSpecifier
	for ds := decln.DeclarationSpecifiers; ds != nil; ds = ds.DeclarationSpecifiers {
		if sc := ds.StorageClassSpecifier; sc != nil && sc.Case == cc.StorageClassSpecifierTypedef {
			typedef = true
		}
		if ts := ds.TypeSpecifier; ts != nil {
			switch ts.Case {
			case cc.TypeSpecifierStructOrUnion:
				aggregate = ts.StructOrUnionSpecifier
			case cc.TypeSpecifierEnum:
				enum = ts.EnumSpecifier
			}
		}
	}

	var members []Member
	defined := isDefined(aggregate)
	if defined {
		members = x.aggregate(aggregate)
	}
	var enumerators []Enumerator
	if enum != nil && enum.Case == cc.EnumSpecifierDef {
		enumerators = enumeratorsOf(enum)
		if tag := enum.Token2.String(); tag != "" {
			logrus.Debugf("found enum %s at %s", tag, enum.Position())
			x.cat.addEnum(&Enum{Name: tag, Enumerators: enumerators})
		}
	}

	// init_declarator_list
	//   : init_declarator
	//   | init_declarator_list ',' init_declarator
	//   ;
	for idl := decln.InitDeclaratorList; idl != nil; idl = idl.InitDeclaratorList {
		if idl.InitDeclarator == nil {
			continue
		}
		decl := idl.InitDeclarator.Declarator
		if !typedef {
			x.function(decln.DeclarationSpecifiers, decl)
			continue
		}
		if decl == nil || decl.Pointer != nil || decl.DirectDeclarator == nil ||
			decl.DirectDeclarator.Case != cc.DirectDeclaratorIdent {
			// typedef of a pointer, array or function type
			continue
		}
		name := decl.Name().String()
		switch {
		case defined:
			logrus.Debugf("found struct alias %s at %s", name, decl.Position())
			x.cat.addStruct(&Struct{Name: name, Members: members, IsUnion: isUnion(aggregate)})
		case enumerators != nil:
			logrus.Debugf("found enum alias %s at %s", name, decl.Position())
			x.cat.addEnum(&Enum{Name: name, Enumerators: enumerators})
		}
	}
}

// function records decl if it declares a function by name.
func (x *extractor) function(declSpec *cc.DeclarationSpecifiers, decl *cc.Declarator) {
	if decl == nil {
		return
	}
	if !declaresFunction(decl) {
		return
	}
	t, name := declaratorType(declSpecType(declSpec), decl)
	fn, ok := t.(*ctype.Func)
	if !ok || name == "" {
		return
	}
	logrus.Debugf("found function %s at %s", name, decl.Position())
	x.cat.addFunction(&Function{Name: name, Type: fn})
}

// declaresFunction reports whether the identifier in decl is directly
// followed by a parameter list. Pointers to functions and arrays of them are
// variables; functions returning function pointers are functions.
func declaresFunction(decl *cc.Declarator) bool {
	// suffix is the direct_declarator applied right after the innermost
	// '(' declarator ')' or IDENTIFIER seen so far.
	var suffix *cc.DirectDeclarator
	for decl != nil {
		if decl.Pointer != nil {
			suffix = nil
		}
		dd := decl.DirectDeclarator
		for dd != nil && dd.Case != cc.DirectDeclaratorIdent && dd.Case != cc.DirectDeclaratorDecl {
			suffix, dd = dd, dd.DirectDeclarator
		}
		if dd == nil {
			return false
		}
		if dd.Case == cc.DirectDeclaratorIdent {
			return suffix != nil &&
				(suffix.Case == cc.DirectDeclaratorFuncParam || suffix.Case == cc.DirectDeclaratorFuncIdent)
		}
		decl = dd.Declarator
	}
	return false
}

// aggregate returns the members of a struct or union definition and records
// it under its tag, if it has one.
func (x *extractor) aggregate(sus *cc.StructOrUnionSpecifier) []Member {
	members := x.members(sus.StructDeclarationList)
	if tag := sus.Token.String(); tag != "" {
		logrus.Debugf("found struct %s at %s", tag, sus.Position())
		x.cat.addStruct(&Struct{Name: tag, Members: members, IsUnion: isUnion(sus)})
	}
	return members
}

func (x *extractor) members(list *cc.StructDeclarationList) []Member {
	// struct_declaration_list
	//   : struct_declaration
	//   | struct_declaration_list struct_declaration
	//   ;
	members := []Member{}
	for l := list; l != nil; l = l.StructDeclarationList {
		// struct_declaration
		//   : specifier_qualifier_list struct_declarator_list ';'
		//   | specifier_qualifier_list ';'
		//   ;
		sd := l.StructDeclaration
		if sd == nil || sd.Empty {
			continue
		}
		var union []Field
		nested := nestedAggregate(sd.SpecifierQualifierList)
		if isDefined(nested) {
			fields := x.aggregate(nested)
			if nested.Token.String() == "" && isUnion(nested) {
				union = toFields(fields)
			}
		}
		if sd.StructDeclaratorList == nil {
			switch {
			case union != nil:
				members = append(members, Member{Union: union})
			case nested != nil && nested.Token.String() == "":
				members = append(members, Member{})
			}
			continue
		}
		base := specQualType(sd.SpecifierQualifierList)
		// struct_declarator_list
		//   : struct_declarator
		//   | struct_declarator_list ',' struct_declarator
		//   ;
		for dl := sd.StructDeclaratorList; dl != nil; dl = dl.StructDeclaratorList {
			// struct_declarator
			//   : declarator
			//   | ':' constant_expression
			//   | declarator ':' constant_expression
			//   ;
			sdecl := dl.StructDeclarator
			if sdecl == nil {
				continue
			}
			if sdecl.Case == cc.StructDeclaratorBitField {
				if name := sdecl.Declarator.Name().String(); name != "" {
					members = append(members, Member{Name: name})
				}
				continue
			}
			decl := sdecl.Declarator
			if union != nil && decl != nil && decl.Pointer == nil &&
				decl.DirectDeclarator != nil && decl.DirectDeclarator.Case == cc.DirectDeclaratorIdent {
				members = append(members, Member{Name: decl.Name().String(), Union: union})
				continue
			}
			t, name := declaratorType(base, decl)
			members = append(members, Member{Name: name, Type: t})
		}
	}
	return members
}

func enumeratorsOf(es *cc.EnumSpecifier) []Enumerator {
	// enumerator_list
	//   : enumerator
	//   | enumerator_list ',' enumerator
	//   ;
	// enumerator
	//   : IDENTIFIER
	//   | IDENTIFIER '=' constant_expression
	//   ;
	enumerators := []Enumerator{}
	for el := es.EnumeratorList; el != nil; el = el.EnumeratorList {
		e := el.Enumerator
		if e == nil {
			continue
		}
		en := Enumerator{Name: e.Token.String()}
		if e.Case == cc.EnumeratorExpr && e.ConstantExpression != nil {
			en.Value = exprText(e.ConstantExpression)
		}
		enumerators = append(enumerators, en)
	}
	return enumerators
}

func nestedAggregate(list *cc.SpecifierQualifierList) *cc.StructOrUnionSpecifier {
	for sql := list; sql != nil; sql = sql.SpecifierQualifierList {
		if ts := sql.TypeSpecifier; ts != nil && ts.Case == cc.TypeSpecifierStructOrUnion {
			return ts.StructOrUnionSpecifier
		}
	}
	return nil
}

func isDefined(sus *cc.StructOrUnionSpecifier) bool {
	return sus != nil && sus.Case == cc.StructOrUnionSpecifierDef && sus.StructDeclarationList != nil
}

func isUnion(sus *cc.StructOrUnionSpecifier) bool {
	return sus != nil && sus.StructOrUnion != nil && sus.StructOrUnion.Case == cc.StructOrUnionUnion
}

func toFields(members []Member) []Field {
	fields := make([]Field, 0, len(members))
	for _, m := range members {
		fields = append(fields, Field{Name: m.Name, Type: m.Type})
	}
	return fields
}
