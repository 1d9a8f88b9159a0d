/*
Package domain contains the core data model of the scene editor.

It defines the fundamental entities of a scene graph, such as Nodes, Property values
and the Scene document itself. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Scene: A named tree of nodes plus the identifier of its root Container.
  - Node: A typed entity with an ordered child list and a property map.
  - PropertyValue: A tagged union over text, number, boolean and packed color.
  - Template: A reusable nested prefab that can be instantiated under any node.
  - SceneDiff: The structural difference between two snapshots of a scene.
*/
package domain
