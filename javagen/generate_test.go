package javagen

import (
	"math/big"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/logger"
	"github.com/teranos/pyjava/pyast"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestGenerateNilModule(t *testing.T) {
	_, err := New(DefaultOptions(), nil).Generate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedTree(err))
}

func TestGenerateEmptyModule(t *testing.T) {
	res := generate(t)
	assert.Equal(t, "", res.Source)
	assert.Empty(t, res.Diagnostics)
}

func TestClassWithMethod(t *testing.T) {
	res := generate(t,
		class("Greeter",
			def("greet", []string{"self"}, printStmt(str("Hello"))),
		),
	)
	assert.Equal(t, lines(
		"public class Greeter {",
		"    public void greet() {",
		`        System.out.println("Hello");`,
		"    }",
		"}",
	), res.Source)
}

func TestConstructorAndFields(t *testing.T) {
	res := generate(t,
		class("Counter",
			def("__init__", []string{"self"},
				&pyast.Assign{Targets: []pyast.Expr{attr(name("self"), "count")}, Value: num(0)},
			),
			def("inc", []string{"self"},
				&pyast.AugAssign{Target: attr(name("self"), "count"), Op: pyast.Add, Value: num(1)},
				ret(attr(name("self"), "count")),
			),
		),
		assign("c", call(name("Counter"))),
		printStmt(call(attr(name("c"), "inc"))),
	)
	assert.Equal(t, lines(
		"public class Counter {",
		"    int count;",
		"    public Counter() {",
		"        this.count = 0;",
		"    }",
		"",
		"    public int inc() {",
		"        this.count += 1;",
		"        return this.count;",
		"    }",
		"}",
		"Counter c = new Counter();",
		"System.out.println(c.inc());",
	), res.Source)
}

func TestHintedConstructorParameter(t *testing.T) {
	ctor := def("__init__", []string{"self", "x"},
		&pyast.Assign{Targets: []pyast.Expr{attr(name("self"), "x")}, Value: name("x")},
		&pyast.Assign{Targets: []pyast.Expr{attr(name("self"), "label")}, Value: str("p")},
	)
	ctor.Args.Args[1].Annotation = name("int")

	res := generate(t, class("Point", ctor))
	assert.Equal(t, lines(
		"public class Point {",
		"    int x;",
		"    String label;",
		"    public Point(int x) {",
		"        this.x = x;",
		`        this.label = "p";`,
		"    }",
		"}",
	), res.Source)
}

func TestRangeLoop(t *testing.T) {
	res := generate(t,
		forRange("i", []pyast.Expr{num(3)}, printStmt(name("i"))),
	)
	assert.Equal(t, lines(
		"int i;",
		"for (i = 0; i != 3; i++) {",
		"    System.out.println(i);",
		"}",
	), res.Source)
}

func TestRangeLoopSteps(t *testing.T) {
	tests := []struct {
		name string
		args []pyast.Expr
		want string
	}{
		{"start stop", []pyast.Expr{num(2), num(5)}, "for (i = 2; i != 5; i++) {"},
		{"step down by one", []pyast.Expr{num(5), num(0), &pyast.UnaryOp{Op: pyast.USub, Operand: num(1)}}, "for (i = 5; i != 0; i--) {"},
		{"step up", []pyast.Expr{num(0), num(10), num(3)}, "for (i = 0; i < 10; i += 3) {"},
		{"step down", []pyast.Expr{num(10), num(0), &pyast.UnaryOp{Op: pyast.USub, Operand: num(2)}}, "for (i = 10; i > 0; i -= 2) {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := generate(t, forRange("i", tt.args, &pyast.Pass{}))
			assert.Equal(t, lines("int i;", tt.want, "}"), res.Source)
		})
	}
}

func TestRandint(t *testing.T) {
	res := generate(t,
		&pyast.Import{Names: []pyast.Alias{{Name: "random"}}},
		assign("x", call(attr(name("random"), "randint"), num(0), num(9))),
		assign("y", call(attr(name("random"), "randint"), num(5), num(5))),
	)
	assert.Equal(t, lines(
		"java.util.Random random = new java.util.Random();",
		"int x = random.nextInt(10);",
		"int y = 5 + random.nextInt(1);",
	), res.Source)
}

func TestRandintFromImport(t *testing.T) {
	res := generate(t,
		&pyast.ImportFrom{Module: "random", Names: []pyast.Alias{{Name: "randint"}}},
		assign("lo", num(1)),
		assign("x", call(name("randint"), name("lo"), num(6))),
	)
	assert.Contains(t, res.Source, "int x = lo + random.nextInt(6 - lo + 1);")
}

func TestFormatIndexedFields(t *testing.T) {
	res := generate(t,
		assign("a", num(1)),
		assign("b", str("x")),
		assign("s", call(attr(str("{0}: {1}"), "format"), name("a"), name("b"))),
	)
	assert.Equal(t, lines(
		"int a = 1;",
		`String b = "x";`,
		`String s = String.format("%1$s: %2$s", a, b);`,
	), res.Source)
}

func TestPercentFormatCastsToDouble(t *testing.T) {
	res := generate(t,
		assign("x", num(3)),
		printStmt(binop(str("%0.2f"), pyast.Mod, name("x"))),
	)
	assert.Equal(t, lines(
		"int x = 3;",
		`System.out.println(String.format("%.2f", (double) x));`,
	), res.Source)
}

func TestReturnTypes(t *testing.T) {
	t.Run("void without returns", func(t *testing.T) {
		res := generate(t, def("f", nil, &pyast.Pass{}))
		assert.Equal(t, lines("public static void f() {", "}"), res.Source)
	})

	t.Run("float return pins double", func(t *testing.T) {
		res := generate(t, def("f", nil, ret(flt(2.5)), ret(num(1))))
		assert.Equal(t, lines(
			"public static double f() {",
			"    return 2.5;",
			"    return 1;",
			"}",
		), res.Source)
	})

	t.Run("bare return is void", func(t *testing.T) {
		res := generate(t, def("f", nil, ret(nil)))
		assert.Equal(t, lines("public static void f() {", "    return;", "}"), res.Source)
	})

	t.Run("inferred return type feeds callers", func(t *testing.T) {
		half := def("half", []string{"x"}, ret(binop(name("x"), pyast.Div, num(2))))
		half.Args.Args[0].Annotation = name("float")
		res := generate(t, half, assign("h", call(name("half"), flt(3))))
		assert.Equal(t, lines(
			"public static double half(double x) {",
			"    return x / 2;",
			"}",
			"double h = half(3.0);",
		), res.Source)
	})

	t.Run("hinted signature", func(t *testing.T) {
		add := def("add", []string{"a", "b"}, ret(binop(name("a"), pyast.Add, name("b"))))
		add.Args.Args[0].Annotation = name("int")
		add.Args.Args[1].Annotation = name("int")
		add.Returns = name("int")
		res := generate(t, add, assign("total", call(name("add"), num(1), num(2))))
		assert.Equal(t, lines(
			"public static int add(int a, int b) {",
			"    return a + b;",
			"}",
			"int total = add(1, 2);",
		), res.Source)
	})
}

func TestDeclaredOnce(t *testing.T) {
	res := generate(t, def("f", nil,
		assign("x", num(1)),
		assign("x", num(2)),
		assign("x", binop(name("x"), pyast.Add, num(1))),
		ret(name("x")),
	))
	assert.Equal(t, lines(
		"public static int f() {",
		"    int x;",
		"    x = 1;",
		"    x = 2;",
		"    x = x + 1;",
		"    return x;",
		"}",
	), res.Source)
	assert.Equal(t, 1, strings.Count(res.Source, "int x"))
}

func TestModuleLevelDeclaresInline(t *testing.T) {
	res := generate(t, assign("x", num(5)), assign("x", num(6)))
	assert.Equal(t, lines("int x = 5;", "x = 6;"), res.Source)
}

func TestHoistedDeclarationsPrecedeMoveUps(t *testing.T) {
	res := generate(t, def("ask", nil,
		assign("name", call(name("input"), str("Name: "))),
		ret(name("name")),
	))
	assert.Equal(t, lines(
		"public static String ask() {",
		"    java.util.Scanner scanner = new java.util.Scanner(System.in);",
		"    String name;",
		`    System.out.print("Name: ");`,
		"    name = scanner.nextLine();",
		"    return name;",
		"}",
	), res.Source)
}

func TestInputConstructsScannerOnce(t *testing.T) {
	res := generate(t,
		assign("a", call(name("input"), str("a? "))),
		assign("b", call(name("input"))),
	)
	assert.Equal(t, lines(
		"java.util.Scanner scanner = new java.util.Scanner(System.in);",
		`System.out.print("a? ");`,
		"String a = scanner.nextLine();",
		"String b = scanner.nextLine();",
	), res.Source)
}

func TestInputInLoopConstructsScannerOnce(t *testing.T) {
	res := generate(t, def("ask", nil,
		forRange("i", []pyast.Expr{num(3)},
			assign("s", call(name("input"))),
		),
	))
	assert.Equal(t, lines(
		"public static void ask() {",
		"    int i;",
		"    java.util.Scanner scanner = new java.util.Scanner(System.in);",
		"    String s;",
		"    for (i = 0; i != 3; i++) {",
		"        s = scanner.nextLine();",
		"    }",
		"}",
	), res.Source)
	assert.Equal(t, 1, strings.Count(res.Source, "new java.util.Scanner"))
}

func TestRandomInNestedBlockBindsToFunction(t *testing.T) {
	res := generate(t,
		&pyast.Import{Names: []pyast.Alias{{Name: "random"}}},
		def("roll", nil,
			&pyast.If{Test: name("True"), Body: []pyast.Stmt{
				assign("a", call(attr(name("random"), "randint"), num(1), num(6))),
			}},
			assign("b", call(attr(name("random"), "randint"), num(1), num(6))),
		),
	)
	assert.Equal(t, 1, strings.Count(res.Source, "new java.util.Random()"))
	assert.Contains(t, res.Source, lines(
		"public static void roll() {",
		"    java.util.Random random = new java.util.Random();",
	))
}

func TestLoopCounterOutlivesLoop(t *testing.T) {
	res := generate(t, def("f", nil,
		forRange("i", []pyast.Expr{num(3)}, &pyast.Pass{}),
		assign("i", num(5)),
		printStmt(name("i")),
	))
	assert.Equal(t, lines(
		"public static void f() {",
		"    int i;",
		"    for (i = 0; i != 3; i++) {",
		"    }",
		"    i = 5;",
		"    System.out.println(i);",
		"}",
	), res.Source)
	assert.Equal(t, 1, strings.Count(res.Source, "int i"))
}

func TestLoopCounterReusesBoundName(t *testing.T) {
	res := generate(t,
		assign("i", num(7)),
		forRange("i", []pyast.Expr{num(2)}, &pyast.Pass{}),
	)
	assert.Equal(t, lines(
		"int i = 7;",
		"for (i = 0; i != 2; i++) {",
		"}",
	), res.Source)
}

func TestElementLoopOverHoistedName(t *testing.T) {
	xs := &pyast.List{Elts: []pyast.Expr{num(1), num(2)}}
	res := generate(t, def("f", nil,
		assign("xs", xs),
		assign("x", num(1)),
		&pyast.For{Target: name("x"), Iter: name("xs"), Body: []pyast.Stmt{printStmt(name("x"))}},
	))
	assert.Regexp(t, `x = 1;\n    for \(\w+ x1 : xs\) \{\n        x = x1;\n        System\.out\.println\(x\);\n    \}`, res.Source)
	assert.Equal(t, 1, strings.Count(res.Source, "int x;"))
	assert.NotContains(t, res.Source, " x : xs")
}

func TestElementLoopInFunctionHoistsName(t *testing.T) {
	res := generate(t, def("f", nil,
		&pyast.For{Target: name("ch"), Iter: str("ab"), Body: []pyast.Stmt{printStmt(name("ch"))}},
		assign("ch", str("z")),
	))
	assert.Contains(t, res.Source, lines(
		"    String ch;",
		`    for (String ch1 : "ab".split("")) {`,
		"        ch = ch1;",
		"        System.out.println(ch);",
		"    }",
		`    ch = "z";`,
	))
}

func TestEnumerateInFunctionHoistsElement(t *testing.T) {
	res := generate(t, def("f", nil,
		assign("names", &pyast.List{Elts: []pyast.Expr{str("a")}}),
		&pyast.For{
			Target: tuple(name("i"), name("n")),
			Iter:   call(name("enumerate"), name("names")),
			Body:   []pyast.Stmt{printStmt(name("n"))},
		},
		printStmt(name("n")),
	))
	assert.Contains(t, res.Source, lines(
		"    for (i = 0; i != names.size(); i++) {",
		"        n = names.get(i);",
	))
	assert.Equal(t, 1, strings.Count(res.Source, "String n"))
	assert.Equal(t, 1, strings.Count(res.Source, "int i"))
}

func TestNoBlankLineAfterSilentStatements(t *testing.T) {
	res := generate(t,
		&pyast.Import{Names: []pyast.Alias{{Name: "math"}}},
		&pyast.Pass{},
		class("P", &pyast.Pass{}),
		def("f", nil, &pyast.Pass{}),
	)
	assert.Equal(t, lines(
		"public class P {",
		"}",
		"",
		"public static void f() {",
		"}",
	), res.Source)
}

func TestForElse(t *testing.T) {
	loop := forRange("i", []pyast.Expr{num(3)},
		&pyast.If{Test: compare(name("i"), pyast.Eq, num(1)), Body: []pyast.Stmt{&pyast.Break{}}},
	)
	loop.Orelse = []pyast.Stmt{printStmt(str("done"))}

	res := generate(t, def("f", nil, loop))
	assert.Equal(t, lines(
		"public static void f() {",
		"    boolean loopBroke1;",
		"    int i;",
		"    loopBroke1 = false;",
		"    for (i = 0; i != 3; i++) {",
		"        if (i == 1) {",
		"            loopBroke1 = true;",
		"            break;",
		"        }",
		"    }",
		"    if (!loopBroke1) {",
		`        System.out.println("done");`,
		"    }",
		"}",
	), res.Source)
}

func TestIfElifElse(t *testing.T) {
	res := generate(t,
		assign("x", num(5)),
		&pyast.If{
			Test: compare(name("x"), pyast.Gt, num(3)),
			Body: []pyast.Stmt{printStmt(str("big"))},
			Orelse: []pyast.Stmt{&pyast.If{
				Test:   compare(name("x"), pyast.Gt, num(1)),
				Body:   []pyast.Stmt{printStmt(str("mid"))},
				Orelse: []pyast.Stmt{printStmt(str("small"))},
			}},
		},
	)
	assert.Equal(t, lines(
		"int x = 5;",
		"if (x > 3) {",
		`    System.out.println("big");`,
		"} else if (x > 1) {",
		`    System.out.println("mid");`,
		"} else {",
		`    System.out.println("small");`,
		"}",
	), res.Source)
}

func TestMainGuard(t *testing.T) {
	res := generate(t,
		def("main", nil, printStmt(str("hi"))),
		&pyast.If{
			Test: compare(name("__name__"), pyast.Eq, str("__main__")),
			Body: []pyast.Stmt{exprStmt(call(name("main")))},
		},
	)
	assert.Equal(t, lines(
		"public static void main() {",
		`    System.out.println("hi");`,
		"}",
		"",
		"public static void main(String[] args) {",
		"    main();",
		"}",
	), res.Source)
}

func TestDestructuring(t *testing.T) {
	t.Run("swap uses temporaries", func(t *testing.T) {
		res := generate(t,
			assign("a", num(1)),
			assign("b", num(2)),
			&pyast.Assign{Targets: []pyast.Expr{tuple(name("a"), name("b"))}, Value: tuple(name("b"), name("a"))},
		)
		assert.Equal(t, lines(
			"int a = 1;",
			"int b = 2;",
			"int tmp1 = b;",
			"int tmp2 = a;",
			"a = tmp1;",
			"b = tmp2;",
		), res.Source)
	})

	t.Run("known list reads by index", func(t *testing.T) {
		res := generate(t,
			assign("pair", &pyast.List{Elts: []pyast.Expr{num(1), num(2)}}),
			&pyast.Assign{Targets: []pyast.Expr{tuple(name("a"), name("b"))}, Value: name("pair")},
		)
		assert.Equal(t, lines(
			"import java.util.*;",
			"",
			"List<Integer> pair = new ArrayList<>(List.of(1, 2));",
			"int a = pair.get(0);",
			"int b = pair.get(1);",
		), res.Source)
	})

	t.Run("count mismatch is skipped with a diagnostic", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		g := New(DefaultOptions(), zap.New(core).Sugar())
		res, err := g.Generate(&pyast.Module{Body: []pyast.Stmt{
			&pyast.Assign{
				Pos:     pyast.Pos{Lineno: 4},
				Targets: []pyast.Expr{tuple(name("a"), name("b"))},
				Value:   tuple(num(1), num(2), num(3)),
			},
		}})
		require.NoError(t, err)

		assert.Equal(t, "", res.Source)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, KindDestructuring, res.Diagnostics[0].Kind)
		assert.Equal(t, 4, res.Diagnostics[0].Line)
		assert.False(t, res.HasErrors())

		logged := logs.FilterField(zap.String(logger.FieldKind, string(KindDestructuring)))
		assert.Equal(t, 1, logged.Len())
	})
}

func TestChainedAssignment(t *testing.T) {
	res := generate(t, &pyast.Assign{Targets: []pyast.Expr{name("a"), name("b")}, Value: num(0)})
	assert.Equal(t, lines("int b = 0;", "int a = b;"), res.Source)
}

func TestAugmentedAssignment(t *testing.T) {
	res := generate(t,
		assign("x", num(1)),
		&pyast.AugAssign{Target: name("x"), Op: pyast.Add, Value: num(2)},
		assign("s", str("ab")),
		&pyast.AugAssign{Target: name("s"), Op: pyast.Mult, Value: num(3)},
	)
	assert.Equal(t, lines(
		"int x = 1;",
		"x += 2;",
		`String s = "ab";`,
		"s = s.repeat(3);",
	), res.Source)
}

func TestDivision(t *testing.T) {
	res := generate(t,
		assign("a", num(7)),
		assign("b", binop(name("a"), pyast.Div, num(2))),
		assign("c", binop(name("a"), pyast.FloorDiv, num(2))),
	)
	assert.Equal(t, lines(
		"int a = 7;",
		"double b = (double) a / 2;",
		"int c = Math.floorDiv(a, 2);",
	), res.Source)
}

func TestCollections(t *testing.T) {
	res := generate(t,
		assign("xs", &pyast.List{Elts: []pyast.Expr{num(1), num(2)}}),
		exprStmt(call(attr(name("xs"), "append"), num(3))),
		printStmt(&pyast.Subscript{Value: name("xs"), Index: &pyast.UnaryOp{Op: pyast.USub, Operand: num(1)}}),
		assign("d", &pyast.Dict{Keys: []pyast.Expr{str("a")}, Values: []pyast.Expr{num(1)}}),
		&pyast.If{
			Test: compare(str("a"), pyast.In, name("d")),
			Body: []pyast.Stmt{printStmt(&pyast.Subscript{Value: name("d"), Index: str("a")})},
		},
	)
	assert.Equal(t, lines(
		"import java.util.*;",
		"",
		"List<Integer> xs = new ArrayList<>(List.of(1, 2));",
		"xs.add(3);",
		"System.out.println(xs.get(xs.size() - 1));",
		`Map<String, Integer> d = new HashMap<>(Map.of("a", 1));`,
		`if (d.containsKey("a")) {`,
		`    System.out.println(d.get("a"));`,
		"}",
	), res.Source)
}

func TestLoopShapes(t *testing.T) {
	t.Run("enumerate", func(t *testing.T) {
		res := generate(t,
			assign("names", &pyast.List{Elts: []pyast.Expr{str("a"), str("b")}}),
			&pyast.For{
				Target: tuple(name("i"), name("n")),
				Iter:   call(name("enumerate"), name("names")),
				Body:   []pyast.Stmt{printStmt(name("i"), name("n"))},
			},
		)
		assert.Contains(t, res.Source, lines(
			"int i;",
			"for (i = 0; i != names.size(); i++) {",
			"    String n = names.get(i);",
			`    System.out.println(i + " " + n);`,
			"}",
		))
	})

	t.Run("items", func(t *testing.T) {
		res := generate(t,
			assign("d", &pyast.Dict{Keys: []pyast.Expr{str("a")}, Values: []pyast.Expr{num(1)}}),
			&pyast.For{
				Target: tuple(name("k"), name("v")),
				Iter:   call(attr(name("d"), "items")),
				Body:   []pyast.Stmt{printStmt(name("k"), name("v"))},
			},
		)
		assert.Contains(t, res.Source, lines(
			"for (Map.Entry<String, Integer> entry1 : d.entrySet()) {",
			"    String k = entry1.getKey();",
			"    int v = entry1.getValue();",
			`    System.out.println(k + " " + v);`,
			"}",
		))
	})

	t.Run("string characters", func(t *testing.T) {
		res := generate(t,
			assign("word", str("hi")),
			&pyast.For{Target: name("ch"), Iter: name("word"), Body: []pyast.Stmt{printStmt(name("ch"))}},
		)
		assert.Equal(t, lines(
			`String word = "hi";`,
			`for (String ch : word.split("")) {`,
			"    System.out.println(ch);",
			"}",
		), res.Source)
	})
}

func TestStringComparison(t *testing.T) {
	res := generate(t,
		assign("who", str("bob")),
		&pyast.If{Test: compare(name("who"), pyast.Eq, str("bob")), Body: []pyast.Stmt{&pyast.Pass{}}},
		&pyast.If{Test: name("who"), Body: []pyast.Stmt{&pyast.Pass{}}},
	)
	assert.Equal(t, lines(
		`String who = "bob";`,
		`if (who.equals("bob")) {`,
		"}",
		"if (!who.isEmpty()) {",
		"}",
	), res.Source)
}

func TestDocstring(t *testing.T) {
	res := generate(t, def("f", nil, exprStmt(str("Say hi."))))
	assert.Equal(t, lines(
		"public static void f() {",
		"    /**",
		"     * Say hi.",
		"     */",
		"}",
	), res.Source)
}

func TestLiterals(t *testing.T) {
	res := generate(t,
		assign("big", num(3000000000)),
		assign("z", none()),
		assign("s", str("tab\there \"q\" é")),
	)
	assert.Equal(t, lines(
		"long big = 3000000000L;",
		"Object z = null;",
		`String s = "tab\there \"q\" \u00e9";`,
	), res.Source)
}

func TestBigIntegerLiteral(t *testing.T) {
	n, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(t, ok)
	res := generate(t, assign("n", &pyast.Constant{Const: pyast.ConstInt, Int: n}))

	assert.Equal(t, lines(`java.math.BigInteger n = new java.math.BigInteger("100000000000000000000");`), res.Source)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, SeverityInfo, res.Diagnostics[0].Severity)
}

func TestUnknownLocalPolicy(t *testing.T) {
	body := []pyast.Stmt{assign("y", call(name("foo")))}

	res := generate(t, body...)
	assert.Equal(t, lines("var y = foo();"), res.Source)

	opts := DefaultOptions()
	opts.UnknownLocal = UnknownLocalObject
	res = generateWith(t, opts, body...)
	assert.Equal(t, lines("Object y = foo();"), res.Source)
}

func TestJava8Target(t *testing.T) {
	opts := DefaultOptions()
	opts.JavaVersion = semver.MustParse("8")

	res := generateWith(t, opts,
		assign("y", call(name("foo"))),
		assign("xs", &pyast.List{Elts: []pyast.Expr{num(1)}}),
		assign("d", &pyast.Dict{Keys: []pyast.Expr{str("a")}, Values: []pyast.Expr{num(1)}}),
	)
	assert.Equal(t, lines(
		"import java.util.*;",
		"",
		"Object y = foo();",
		"List<Integer> xs = new ArrayList<>(Arrays.asList(1));",
		`Map<String, Integer> d = new HashMap<>() {{ put("a", 1); }};`,
	), res.Source)
}

func TestUnsupportedConstructs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	g := New(DefaultOptions(), zap.New(core).Sugar())

	res, err := g.Generate(&pyast.Module{Body: []pyast.Stmt{
		&pyast.While{Pos: pyast.Pos{Lineno: 3}, Test: name("x")},
		exprStmt(&pyast.UnsupportedExpr{Pos: pyast.Pos{Lineno: 5}, Type: "Lambda"}),
	}})
	require.NoError(t, err)

	assert.Equal(t, lines(
		"// unsupported: While",
		"/* unsupported: Lambda */ null;",
	), res.Source)
	assert.True(t, res.HasErrors())
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, "line 3: error: unsupported statement While", res.Diagnostics[0].String())
	assert.Equal(t, KindUnsupportedExpression, res.Diagnostics[1].Kind)

	assert.Equal(t, 1, logs.FilterField(zap.String(logger.FieldKind, string(KindUnsupportedStatement))).Len())
}

func TestDiagnosticsLogAtTheirSeverity(t *testing.T) {
	n, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(t, ok)

	core, logs := observer.New(zapcore.DebugLevel)
	g := New(DefaultOptions(), zap.New(core).Sugar())
	_, err := g.Generate(&pyast.Module{Body: []pyast.Stmt{
		assign("n", &pyast.Constant{Const: pyast.ConstInt, Int: n}),
		&pyast.Assign{Targets: []pyast.Expr{tuple(name("a"), name("b"))}, Value: tuple(num(1), num(2), num(3))},
		&pyast.While{Pos: pyast.Pos{Lineno: 3}, Test: name("x")},
	}})
	require.NoError(t, err)

	levels := map[string]zapcore.Level{}
	for _, entry := range logs.FilterFieldKey(logger.FieldSeverity).All() {
		levels[entry.ContextMap()[logger.FieldSeverity].(string)] = entry.Level
	}
	assert.Equal(t, map[string]zapcore.Level{
		string(SeverityInfo):    zapcore.InfoLevel,
		string(SeverityWarning): zapcore.WarnLevel,
		string(SeverityError):   zapcore.ErrorLevel,
	}, levels)
}

func TestKeywordArgumentsPassedPositionally(t *testing.T) {
	c := call(name("foo"), num(1))
	c.Keywords = []pyast.Keyword{{Name: "x", Value: num(2)}}
	res := generate(t, exprStmt(c))

	assert.Equal(t, lines("foo(1, 2);"), res.Source)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, KindDroppedArgument, res.Diagnostics[0].Kind)
}

func TestPrintKeywords(t *testing.T) {
	c := call(name("print"), str("a"), str("b"))
	c.Keywords = []pyast.Keyword{{Name: "sep", Value: str(", ")}, {Name: "end", Value: str("")}}
	res := generate(t, exprStmt(c))
	assert.Equal(t, lines(`System.out.print("a" + ", " + "b");`), res.Source)
}

func TestGenerateFromDecodedTree(t *testing.T) {
	const src = `{
  "_type": "Module",
  "body": [
    {"_type": "ClassDef", "name": "Greeter", "lineno": 1, "bases": [], "decorator_list": [],
     "body": [
       {"_type": "FunctionDef", "name": "greet", "lineno": 2, "decorator_list": [],
        "args": {"_type": "arguments", "posonlyargs": [], "kwonlyargs": [], "defaults": [],
                 "args": [{"_type": "arg", "arg": "self"},
                          {"_type": "arg", "arg": "name", "annotation": {"_type": "Name", "id": "str"}}]},
        "returns": {"_type": "Name", "id": "str"},
        "body": [
          {"_type": "Return", "lineno": 3,
           "value": {"_type": "BinOp", "op": {"_type": "Add"},
                     "left": {"_type": "Constant", "value": "hi "},
                     "right": {"_type": "Name", "id": "name"}}}
        ]}
     ]}
  ]
}`
	mod, err := pyast.Decode([]byte(src), pyast.FormatJSON)
	require.NoError(t, err)

	out, err := Generate(mod)
	require.NoError(t, err)
	assert.Equal(t, lines(
		"public class Greeter {",
		"    public String greet(String name) {",
		`        return "hi " + name;`,
		"    }",
		"}",
	), out)
}
