package resumes

// Sample texts for the seeding endpoint, handy for manual testing of the
// tailoring flow.

const sampleResume = `John Doe
Software Engineer

Experience:
- Senior Software Engineer at Tech Corp (2020-Present)
  * Led development of microservices architecture
  * Implemented CI/CD pipelines
  * Mentored junior developers

- Software Engineer at Startup Inc (2018-2020)
  * Developed RESTful APIs
  * Worked with React and Node.js
  * Implemented automated testing

Skills:
- Python, JavaScript, React, Node.js
- AWS, Docker, Kubernetes
- Agile methodologies
`

const sampleJobDescription = `Senior Full Stack Developer

We are looking for a Senior Full Stack Developer to join our team. The ideal candidate will have:

Requirements:
- 5+ years of experience in software development
- Strong experience with React and Node.js
- Experience with microservices architecture
- Knowledge of AWS and cloud technologies
- Experience with CI/CD pipelines
- Strong problem-solving skills

Responsibilities:
- Develop and maintain web applications
- Design and implement microservices
- Work with cloud technologies
- Mentor junior developers
- Implement CI/CD pipelines
`
