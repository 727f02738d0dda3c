package datasets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// Built-in sample data, used as a last-resort fallback when a dataset is
// missing on disk and downloads are unavailable, and by the CLI to seed a
// data directory. Each family's samples are kept in its native raw shape
// so they flow through the same readers and normalizer as real files.

func sampleGSM8K() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"question":   "Janet's dogs eat 2 pounds of dog food per day. How many pounds of dog food do her dogs eat in 3 days?",
			"answer":     "6 pounds",
			"solution":   "Janet's dogs eat 2 pounds of dog food per day. In 3 days, they will eat 2 * 3 = 6 pounds of dog food.",
			"difficulty": "basic",
			"category":   "word_problem",
		},
		{
			"question":   "There are 15 trees in the grove. Grove workers will plant trees in the grove today. After they are done, there will be 21 trees. How many trees did the grove workers plant today?",
			"answer":     "6 trees",
			"solution":   "There are 15 trees initially. After planting, there will be 21 trees. So the workers planted 21 - 15 = 6 trees.",
			"difficulty": "basic",
			"category":   "word_problem",
		},
		{
			"question":   "Leah had 32 chocolates and her sister had 42. If they ate 35, how many pieces do they have left in total?",
			"answer":     "39 chocolates",
			"solution":   "Leah had 32 chocolates and her sister had 42. Together they had 32 + 42 = 74 chocolates. After eating 35, they have 74 - 35 = 39 chocolates left.",
			"difficulty": "intermediate",
			"category":   "word_problem",
		},
		{
			"question":   "If there are 3 cars in the parking lot and 2 more cars arrive, how many cars are in the parking lot?",
			"answer":     "5 cars",
			"solution":   "There are 3 cars initially. 2 more cars arrive. So there are 3 + 2 = 5 cars in the parking lot.",
			"difficulty": "basic",
			"category":   "word_problem",
		},
	}
}

func sampleMathQA() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"Problem":   "What is the value of x if 2x + 5 = 13?",
			"Rationale": "Subtract 5 from both sides: 2x = 8. Then divide by 2: x = 4",
			"correct":   "4",
			"options":   "a) 3 b) 4 c) 5 d) 6",
			"category":  "algebra",
		},
		{
			"Problem":   "Find the derivative of f(x) = x^2 + 3x + 1",
			"Rationale": "Apply power rule: d/dx(x^2) = 2x. Apply constant rule: d/dx(3x) = 3. So f'(x) = 2x + 3",
			"correct":   "2x + 3",
			"options":   "a) x + 3 b) 2x + 3 c) 2x d) x^2 + 3",
			"category":  "calculus",
		},
		{
			"Problem":   "Calculate the area of a circle with radius 5",
			"Rationale": "Area = πr^2 = π(5)^2 = 25π",
			"correct":   "25π",
			"options":   "a) 10π b) 25π c) 50π d) 100π",
			"category":  "geometry",
		},
		{
			"Problem":   "What is the slope of the line y = 2x + 3?",
			"Rationale": "The slope is the coefficient of x, which is 2",
			"correct":   "2",
			"options":   "a) 1 b) 2 c) 3 d) 4",
			"category":  "algebra",
		},
	}
}

func sampleMAWPS() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"sQuestion":  "A train travels 120 miles in 2 hours. What is its speed in miles per hour?",
			"lSolutions": []interface{}{"60"},
			"lEquations": []interface{}{"120/2"},
			"iIndex":     float64(1),
			"category":   "speed",
		},
		{
			"sQuestion":  "John has 5 apples. He gives 2 to Mary. How many apples does John have now?",
			"lSolutions": []interface{}{"3"},
			"lEquations": []interface{}{"5-2"},
			"iIndex":     float64(2),
			"category":   "subtraction",
		},
		{
			"sQuestion":  "A rectangle has length 8 and width 6. What is its area?",
			"lSolutions": []interface{}{"48"},
			"lEquations": []interface{}{"8*6"},
			"iIndex":     float64(3),
			"category":   "area",
		},
		{
			"sQuestion":  "There are 20 students in a class. 12 are girls. How many are boys?",
			"lSolutions": []interface{}{"8"},
			"lEquations": []interface{}{"20-12"},
			"iIndex":     float64(4),
			"category":   "subtraction",
		},
	}
}

func sampleCustom() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"problem_id":       "P001",
			"problem_text":     "Solve for x: 2x + 5 = 13",
			"final_answer":     "x = 4",
			"difficulty_level": "basic",
			"subject":          "algebra",
			"solution_steps":   []interface{}{"Subtract 5 from both sides: 2x = 8", "Divide by 2: x = 4"},
			"step_count":       float64(2),
		},
		{
			"problem_id":       "P002",
			"problem_text":     "Find the derivative of f(x) = x^2 + 3x + 1",
			"final_answer":     "f'(x) = 2x + 3",
			"difficulty_level": "intermediate",
			"subject":          "calculus",
			"solution_steps":   []interface{}{"Apply power rule: d/dx(x^2) = 2x", "Apply constant rule: d/dx(3x) = 3", "Result: f'(x) = 2x + 3"},
			"step_count":       float64(3),
		},
		{
			"problem_id":       "P003",
			"problem_text":     "Calculate the area under the curve y = x^2 from x=0 to x=2",
			"final_answer":     "Area = 8/3",
			"difficulty_level": "advanced",
			"subject":          "calculus",
			"solution_steps":   []interface{}{"Set up integral: ∫₀² x² dx", "Apply power rule: [x³/3]₀²", "Evaluate: 8/3 - 0 = 8/3"},
			"step_count":       float64(3),
		},
		{
			"problem_id":       "P004",
			"problem_text":     "Find the limit as x approaches 0 of (sin(x))/x",
			"final_answer":     "Limit = 1",
			"difficulty_level": "advanced",
			"subject":          "calculus",
			"solution_steps":   []interface{}{"Use L'Hôpital's rule", "d/dx(sin(x)) = cos(x), d/dx(x) = 1", "Limit = cos(0)/1 = 1"},
			"step_count":       float64(3),
		},
	}
}

func sampleRawRecords(family Family) ([]map[string]interface{}, error) {
	switch family {
	case FamilyGSM8K:
		return sampleGSM8K(), nil
	case FamilyMathQA:
		return sampleMathQA(), nil
	case FamilyMAWPS:
		return sampleMAWPS(), nil
	case FamilyCustom:
		return sampleCustom(), nil
	default:
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "no sample data for family"),
			errors.Fields{"family": string(family)})
	}
}

// SampleTable builds a normalized table from the built-in sample data.
func SampleTable(family Family, split Split) (*Table, error) {
	raws, err := sampleRawRecords(family)
	if err != nil {
		return nil, err
	}

	rt := &RawTable{Records: make([]RawRecord, 0, len(raws))}
	for i, fields := range raws {
		doc, err := json.Marshal(fields)
		if err != nil {
			return nil, errors.Wrap(err, errors.Unknown, "failed to encode sample record")
		}
		rt.Records = append(rt.Records, RawRecord{Line: i + 1, Fields: fields, JSON: doc})
	}

	return NormalizeTable(rt, family, split)
}

// WriteSampleFiles seeds dir with sample dataset files in each family's
// native format, so subsequent loads exercise the real readers: JSON
// lines for GSM8K and custom, JSON arrays for MathQA and MAWPS.
func WriteSampleFiles(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to create data directory")
	}

	for _, split := range []Split{SplitTrain, SplitTest} {
		if err := writeSampleJSONLines(filepath.Join(dir, fmt.Sprintf("gsm8k_%s.jsonl", split)), sampleGSM8K()); err != nil {
			return err
		}
		if err := writeSampleJSONArray(filepath.Join(dir, fmt.Sprintf("mathqa_%s.json", split)), sampleMathQA()); err != nil {
			return err
		}
		if err := writeSampleJSONArray(filepath.Join(dir, fmt.Sprintf("mawps_%s.json", split)), sampleMAWPS()); err != nil {
			return err
		}
	}

	return writeSampleJSONLines(filepath.Join(dir, "custom.jsonl"), sampleCustom())
}

func writeSampleJSONLines(path string, records []map[string]interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to create sample file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, errors.PersistenceFailed, "failed to write sample record")
		}
	}
	return nil
}

func writeSampleJSONArray(path string, records []map[string]interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to encode sample records")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to write sample file")
	}
	return nil
}
