package document

// SampleName labels the built-in example pair in validation reports.
const SampleName = "built-in sample"

// SampleYAML is the canonical structured document used as the built-in
// validation case: one project block, two functional and two non-functional
// requirements.
const SampleYAML = `project_info:
  name: "Online Bookstore"
  version: "1.0.0"
  description: "Functional and quality requirements for the online bookstore platform"
  objectives:
    - "Convenient book purchasing"
    - "Multiple payment methods"

functional_requirements:
  - id: "F-001"
    title: "User Registration"
    description: "Users register accounts with email verification"
    priority: "High"
    acceptance_criteria:
      - "Registration requires a valid email address"
      - "System sends a verification email"
    dependencies: []

  - id: "F-002"
    title: "Book Search"
    description: "Readers search books by title, author or category"
    priority: "High"
    acceptance_criteria:
      - "Search results support sorting"
      - "Search suggests completions while typing"
    dependencies: ["F-001"]

non_functional_requirements:
  - id: "NFR-P-001"
    type: "performance"
    description: "Page response time"
    metric: "Page load time"
    target_value: "Under 2 seconds"

  - id: "NFR-S-001"
    type: "security"
    description: "Personal data protection"
    metric: "Encryption coverage"
    target_value: "100 percent of personal data encrypted"
`

// SampleMarkdown is the expected rendering of SampleYAML.
const SampleMarkdown = `# Online Bookstore

Functional and quality requirements for the online bookstore platform.

- Convenient book purchasing
- Multiple payment methods

## Functional Requirements

### F-001 User Registration

Users register accounts with email verification.

- [ ] Registration requires a valid email address
- [ ] System sends a verification email

### F-002 Book Search

Readers search books by title, author or category.

- [ ] Search results support sorting
- [ ] Search suggests completions while typing

## Quality Requirements

| ID | Description | Metric | Target |
|----|-------------|--------|--------|
| NFR-P-001 | Page response time | Page load time | Under 2 seconds |
| NFR-S-001 | Personal data protection | Encryption coverage | 100 percent of personal data encrypted |
`
