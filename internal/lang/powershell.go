package lang

func init() {
	Register(&Spec{
		Language:       Powershell,
		FileExtensions: []string{".ps1", ".psm1", ".psd1"},

		// Grammar kinds whose body is conditionally or repeatedly executed.
		// Mirrors BranchFlow classification in internal/traverse.
		BranchNodeTypes: []string{
			"if_statement",
			"elseif_clause",
			"else_clause",
			"while_statement",
			"do_while_statement",
			"do_until_statement",
			"for_statement",
			"foreach_statement",
			"switch_statement",
			"switch_clause",
			"try_statement",
			"catch_clause",
			"finally_clause",
			"trap_statement",
			"function_statement",
			"script_block_expression",
			"script_block",
		},

		// Grammatically transparent single-child wrapper kinds the Forward
		// rule propagates values through.
		WrapperNodeTypes: []string{
			"unary_expression",
			"argument_expression",
			"primary_expression",
			"logical_expression",
			"bitwise_expression",
			"comparison_expression",
			"parenthesized_expression",
			"pipeline",
			"statement",
			"expression_with_unary_operator",
		},
	})
}
