package main

//
// Recursive-descent expression evaluator (C4). The grammar is exactly
// spec.md §4.3's:
//
//	expr     := arith [ relop arith ]
//	arith    := term { ('+' | '-') term }
//	term     := factor { ('*' | '/') factor }
//	factor   := unary | primary
//	unary    := ('+'|'-') factor
//	primary  := integer | '(' expr ')' | RND(expr) | PEEK(expr)
//	          | var | var '(' expr [',' expr] ')'
//
// Every production returns a wrapping int32 - the dialect never
// raises on arithmetic overflow (spec.md §4.3).
//

func (e *Engine) evalExpr(s *scanner) int32 {
	left := e.evalArith(s)

	save := s.pos
	if op, ok := s.matchRelop(); ok {
		right := e.evalArith(s)
		return relResult(op, left, right)
	}
	s.pos = save

	return left
}

func relResult(op string, l, r int32) int32 {
	var truth bool

	switch op {
	case "=":
		truth = l == r
	case "<>":
		truth = l != r
	case "<=":
		truth = l <= r
	case ">=":
		truth = l >= r
	case "<":
		truth = l < r
	case ">":
		truth = l > r
	}

	if truth {
		return -1
	}
	return 0
}

func (e *Engine) evalArith(s *scanner) int32 {
	v := e.evalTerm(s)

	for {
		if s.matchByte('+') {
			v += e.evalTerm(s)
		} else if s.matchByte('-') {
			v -= e.evalTerm(s)
		} else {
			break
		}
	}

	return v
}

// evalTerm implements the "division by zero yields 0" convenience
// documented in spec.md §4.3 - not an error, just a defined result.
func (e *Engine) evalTerm(s *scanner) int32 {
	v := e.evalFactor(s)

	for {
		if s.matchByte('*') {
			v *= e.evalFactor(s)
		} else if s.matchByte('/') {
			rhs := e.evalFactor(s)
			if rhs == 0 {
				v = 0
			} else {
				v /= rhs
			}
		} else {
			break
		}
	}

	return v
}

// evalFactor is right-associative unary +/-, which may nest
// arbitrarily deep (spec.md §4.3).
func (e *Engine) evalFactor(s *scanner) int32 {
	if s.matchByte('+') {
		return e.evalFactor(s)
	}
	if s.matchByte('-') {
		return -e.evalFactor(s)
	}
	return e.evalPrimary(s)
}

func (e *Engine) evalPrimary(s *scanner) int32 {
	if s.matchByte('(') {
		v := e.evalExpr(s)
		s.expectByte(')')
		return v
	}

	if n, ok := s.parseNumber(); ok {
		return n
	}

	if s.matchKeyword("RND") {
		s.expectByte('(')
		n := e.evalExpr(s)
		s.expectByte(')')
		return e.nextRandom(n)
	}

	if s.matchKeyword("PEEK") {
		s.expectByte('(')
		addr := e.evalExpr(s)
		s.expectByte(')')
		return int32(e.prog.peekByte(addr))
	}

	letter, ok := s.parseLetter()
	runtimeCheck(ok, "SYNTAX ERROR")

	if s.matchByte('(') {
		arr := e.vars.findArray(letter)
		runtimeCheck(arr != nil, "UNDIMENSIONED ARRAY %c", letter)

		i := e.evalExpr(s)

		var j int32
		if s.matchByte(',') {
			j = e.evalExpr(s)
		}
		s.expectByte(')')

		return e.vars.readCell(arr, i, j)
	}

	return e.vars.readScalar(letter)
}
