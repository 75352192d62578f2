package extract

import (
	"sort"
	"strings"

	"modernc.org/cc/v3"

	"github.com/kbolino/go-clay-codegen/ctype"
)

// specType accumulates the type specifiers and qualifiers of one
// declaration into a base type.
type specType struct {
	words      []string
	qualifiers []string
	named      ctype.Type
	unresolved bool
}

func (s *specType) build() ctype.Type {
	if s.unresolved {
		return nil
	}
	base := s.named
	if base == nil {
		if len(s.words) == 0 {
			// implicit int
			base = ctype.Named{Name: "int"}
		} else {
			base = ctype.Named{Name: strings.Join(s.words, " ")}
		}
	}
	return ctype.Qualify(base, s.qualifiers...)
}

func declSpecType(declSpec *cc.DeclarationSpecifiers) ctype.Type {
	// declaration_specifiers
	//   : storage_class_specifier
	//   | storage_class_specifier declaration_specifiers
	//   | type_specifier
	//   | type_specifier declaration_specifiers
	//   | type_qualifier
	//   | type_qualifier declaration_specifiers
	//   ;
	var s specType
	for ds := declSpec; ds != nil; ds = ds.DeclarationSpecifiers {
		// ignore storage_class_specifier and function_specifier
		if ts := ds.TypeSpecifier; ts != nil {
			s.addTypeSpec(ts)
		}
		if tq := ds.TypeQualifier; tq != nil {
			s.addTypeQual(tq)
		}
	}
	return s.build()
}

func specQualType(list *cc.SpecifierQualifierList) ctype.Type {
	// specifier_qualifier_list
	//   : type_specifier specifier_qualifier_list
	//   | type_specifier
	//   | type_qualifier specifier_qualifier_list
	//   | type_qualifier
	//   ;
	var s specType
	for sql := list; sql != nil; sql = sql.SpecifierQualifierList {
		if ts := sql.TypeSpecifier; ts != nil {
			s.addTypeSpec(ts)
		}
		if tq := sql.TypeQualifier; tq != nil {
			s.addTypeQual(tq)
		}
	}
	return s.build()
}

func (s *specType) addTypeQual(typeQual *cc.TypeQualifier) {
	// type_qualifier
	//   : CONST
	//   | RESTRICT
	//   | VOLATILE
	//   | ATOMIC
	//   ;
	switch typeQual.Case {
	case cc.TypeQualifierConst:
		s.qualifiers = append(s.qualifiers, "const")
	case cc.TypeQualifierRestrict:
		s.qualifiers = append(s.qualifiers, "restrict")
	case cc.TypeQualifierVolatile:
		s.qualifiers = append(s.qualifiers, "volatile")
	case cc.TypeQualifierAtomic:
		s.qualifiers = append(s.qualifiers, "_Atomic")
	}
}

func (s *specType) addTypeSpec(typeSpec *cc.TypeSpecifier) {
	// type_specifier
	//   : VOID
	//   | CHAR
	//   | SHORT
	//   | INT
	//   | LONG
	//   | FLOAT
	//   | DOUBLE
	//   | SIGNED
	//   | UNSIGNED
	//   | BOOL
	//   | COMPLEX
	//   | IMAGINARY
	//   | struct_or_union_specifier
	//   | enum_specifier
	//   | TYPE_NAME
	// ;
	switch typeSpec.Case {
	case cc.TypeSpecifierVoid:
		s.words = append(s.words, "void")
	case cc.TypeSpecifierChar:
		s.words = append(s.words, "char")
	case cc.TypeSpecifierShort:
		s.words = append(s.words, "short")
	case cc.TypeSpecifierInt:
		s.words = append(s.words, "int")
	case cc.TypeSpecifierLong:
		s.words = append(s.words, "long")
	case cc.TypeSpecifierFloat:
		s.words = append(s.words, "float")
	case cc.TypeSpecifierDouble:
		s.words = append(s.words, "double")
	case cc.TypeSpecifierSigned:
		s.words = append(s.words, "signed")
	case cc.TypeSpecifierUnsigned:
		s.words = append(s.words, "unsigned")
	case cc.TypeSpecifierBool:
		s.words = append(s.words, "bool")
	case cc.TypeSpecifierComplex:
		s.words = append(s.words, "complex")
	case cc.TypeSpecifierStructOrUnion:
		// struct_or_union_specifier
		//   : struct_or_union IDENTIFIER '{' struct_declaration_list '}'
		//   | struct_or_union '{' struct_declaration_list '}'
		//   | struct_or_union IDENTIFIER
		//   ;
		tag := typeSpec.StructOrUnionSpecifier.Token.String()
		if tag == "" {
			s.unresolved = true
			return
		}
		s.named = ctype.Named{Name: tag}
	case cc.TypeSpecifierEnum:
		// enum_specifier
		//   : ENUM '{' enumerator_list '}'
		//   | ENUM IDENTIFIER '{' enumerator_list '}'
		//   | ENUM IDENTIFIER
		//   ;
		tag := typeSpec.EnumSpecifier.Token2.String()
		if tag == "" {
			s.unresolved = true
			return
		}
		s.named = ctype.Named{Name: tag}
	case cc.TypeSpecifierTypedefName:
		s.named = ctype.Named{Name: typeSpec.Token.String()}
	default:
		s.unresolved = true
	}
}

// declaratorType applies d to base, reading the declarator inside-out, and
// returns the resulting type along with the declared name, if any.
func declaratorType(base ctype.Type, d *cc.Declarator) (ctype.Type, string) {
	// declarator
	//   : pointer direct_declarator
	//   | direct_declarator
	//   ;
	if d == nil {
		return base, ""
	}
	return directDeclaratorType(ctype.PointerTo(base, pointerLevels(d.Pointer)), d.DirectDeclarator)
}

func directDeclaratorType(t ctype.Type, dd *cc.DirectDeclarator) (ctype.Type, string) {
	// direct_declarator
	//   : IDENTIFIER
	//   | '(' declarator ')'
	//   | direct_declarator '[' constant_expression ']'
	//   | direct_declarator '[' ']'
	//   | direct_declarator '(' parameter_type_list ')'
	//   | direct_declarator '(' identifier_list ')'
	//   | direct_declarator '(' ')'
	//   ;
	for dd != nil {
		switch dd.Case {
		case cc.DirectDeclaratorIdent:
			return t, dd.Token.String()
		case cc.DirectDeclaratorDecl:
			return declaratorType(t, dd.Declarator)
		case cc.DirectDeclaratorArr, cc.DirectDeclaratorStaticArr, cc.DirectDeclaratorArrStatic:
			length := ""
			if dd.AssignmentExpression != nil {
				length = exprText(dd.AssignmentExpression)
			}
			t = arrayOf(t, length)
		case cc.DirectDeclaratorStar:
			t = arrayOf(t, "")
		case cc.DirectDeclaratorFuncParam:
			t = funcType(t, dd.ParameterTypeList)
		case cc.DirectDeclaratorFuncIdent:
			// K&R identifier lists carry no types
			t = &ctype.Func{Return: t}
		default:
			return nil, dd.Name().String()
		}
		dd = dd.DirectDeclarator
	}
	return t, ""
}

func pointerLevels(pointer *cc.Pointer) int {
	// pointer
	//   : '*'
	//   | '*' type_qualifier_list
	//   | '*' pointer
	//   | '*' type_qualifier_list pointer
	//   ;
	levels := 0
	for p := pointer; p != nil; p = p.Pointer {
		levels++
	}
	return levels
}

func arrayOf(elem ctype.Type, length string) ctype.Type {
	if elem == nil {
		return nil
	}
	return ctype.Array{Elem: elem, Len: length}
}

// funcType builds a function type. Parameters without a name are dropped.
func funcType(ret ctype.Type, ptl *cc.ParameterTypeList) *ctype.Func {
	// parameter_type_list
	//   : parameter_list
	//   | parameter_list ',' ELLIPSIS
	//   ;
	f := &ctype.Func{Return: ret}
	if ptl == nil {
		return f
	}
	f.Variadic = ptl.Case == cc.ParameterTypeListVar
	// parameter_list
	//   : parameter_declaration
	//   | parameter_list ',' parameter_declaration
	//   ;
	for pl := ptl.ParameterList; pl != nil; pl = pl.ParameterList {
		// parameter_declaration
		//   : declaration_specifiers declarator
		//   | declaration_specifiers abstract_declarator
		//   | declaration_specifiers
		//   ;
		pd := pl.ParameterDeclaration
		if pd == nil || pd.Declarator == nil {
			continue
		}
		t, name := declaratorType(declSpecType(pd.DeclarationSpecifiers), pd.Declarator)
		if name == "" {
			continue
		}
		f.Params = append(f.Params, ctype.Param{Name: name, Type: t})
	}
	return f
}

// exprText returns the source spelling of an expression's tokens joined
// without separators, e.g. "1<<3" or "'a'".
func exprText(n cc.Node) string {
	var toks []cc.Token
	cc.Inspect(n, func(n cc.Node, enter bool) bool {
		if tok, ok := n.(*cc.Token); ok && tok.Value != 0 {
			toks = append(toks, *tok)
		}
		return true
	})
	sort.SliceStable(toks, func(i, j int) bool {
		return toks[i].Seq() < toks[j].Seq()
	})
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && toks[i-1].Seq() == tok.Seq() {
			continue
		}
		if tok.Src != 0 {
			b.WriteString(tok.Src.String())
		} else {
			b.WriteString(tok.String())
		}
	}
	return b.String()
}
