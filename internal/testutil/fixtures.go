// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
)

// Problem builds a canonical record. Dataset and Split are left for Table
// to stamp.
func Problem(id, question, answer string) datasets.Problem {
	return datasets.Problem{ID: id, Question: question, Answer: answer}
}

// Table bundles problems under one family and split, stamping both onto
// every record.
func Table(family datasets.Family, split datasets.Split, problems ...datasets.Problem) *datasets.Table {
	for i := range problems {
		problems[i].Dataset = family
		problems[i].Split = split
	}
	return &datasets.Table{Family: family, Split: split, Problems: problems}
}
